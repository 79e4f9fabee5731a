package facets

import "github.com/brightlane/fuzzyindex/internal/codec"

// Tag is one flat product label: a name, its serialization id, and the
// set of products carrying it. Unlike categories, tags are not grouped
// and every tag is independently toggleable.
type Tag struct {
	Name            string
	SerializationID int
	Products        *IDSet
}

// RawTag is the build-time ingestion shape fed to NewTagIndex.
type RawTag struct {
	Name       string
	ProductIDs []int
}

// TagIndex is the full sequence of tags built for a catalog.
type TagIndex struct {
	Tags []Tag
}

// NewTagIndex builds a TagIndex from raw (tag -> product ids) membership
// data, assigning serialization ids by position.
func NewTagIndex(tags []RawTag) *TagIndex {
	out := make([]Tag, 0, len(tags))
	for i, rt := range tags {
		out = append(out, Tag{Name: rt.Name, SerializationID: i, Products: NewIDSet(rt.ProductIDs)})
	}
	return &TagIndex{Tags: out}
}

// Tag looks up a tag by name.
func (idx *TagIndex) Tag(name string) (Tag, bool) {
	for _, t := range idx.Tags {
		if t.Name == name {
			return t, true
		}
	}
	return Tag{}, false
}

// Names returns every tag name in registration order.
func (idx *TagIndex) Names() []string {
	out := make([]string, len(idx.Tags))
	for i, t := range idx.Tags {
		out[i] = t.Name
	}
	return out
}

func (idx *TagIndex) Encode(w *codec.Writer) {
	codec.WriteSlice(w, idx.Tags, encodeTag)
}

func DecodeTagIndex(r *codec.Reader) (*TagIndex, error) {
	tags, err := codec.ReadSlice(r, decodeTag)
	if err != nil {
		return nil, err
	}
	for i := range tags {
		tags[i].SerializationID = i
	}
	return &TagIndex{Tags: tags}, nil
}

func encodeTag(w *codec.Writer, t Tag) {
	w.WriteString(t.Name)
	t.Products.Encode(w)
}

func decodeTag(r *codec.Reader) (Tag, error) {
	name, err := r.ReadString()
	if err != nil {
		return Tag{}, err
	}
	products, err := DecodeIDSet(r)
	if err != nil {
		return Tag{}, err
	}
	return Tag{Name: name, Products: products}, nil
}

// TagHandler holds the set of currently-active tag selections and
// implements IsValid as the conjunction of membership across every
// active tag, the same discipline as CategoryHandler.
type TagHandler struct {
	active []*IDSet
}

// NewTagHandler returns a handler with no active tags: IsValid accepts
// every product.
func NewTagHandler() *TagHandler {
	return &TagHandler{}
}

// Activate adds tagName to the active filter set. An unknown tag is a
// no-op lookup miss.
func (h *TagHandler) Activate(idx *TagIndex, tagName string) {
	tag, ok := idx.Tag(tagName)
	if !ok {
		return
	}
	h.active = append(h.active, tag.Products)
}

// IsValid reports whether productID satisfies every active tag filter.
func (h *TagHandler) IsValid(productID int) bool {
	for _, set := range h.active {
		if !set.Contains(productID) {
			return false
		}
	}
	return true
}
