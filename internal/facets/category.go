package facets

import "github.com/brightlane/fuzzyindex/internal/codec"

// CategoryOption is one selectable value within a Category (e.g. "red"
// within category "color"): a name, its serialization id within the
// category, and the set of products carrying it.
type CategoryOption struct {
	Name            string
	SerializationID int
	Products        *IDSet
}

// Category groups a set of mutually-related options under a name, plus
// whether selecting one option excludes the others (exclusive) or allows
// multiple simultaneously active options.
type Category struct {
	Name      string
	Options   []CategoryOption
	Exclusive bool
}

// Option looks up one of the category's options by name.
func (c Category) Option(name string) (CategoryOption, bool) {
	for _, o := range c.Options {
		if o.Name == name {
			return o, true
		}
	}
	return CategoryOption{}, false
}

// CategoryIndex is the full sequence of categories built for a catalog.
type CategoryIndex struct {
	Categories []Category
}

// NewCategoryIndex builds a CategoryIndex from raw (category -> option ->
// product ids) membership data: each option's product list is
// deduplicated and delta-encodable via IDSet.
func NewCategoryIndex(categories []RawCategory) *CategoryIndex {
	out := make([]Category, 0, len(categories))
	for _, rc := range categories {
		opts := make([]CategoryOption, 0, len(rc.Options))
		for i, ro := range rc.Options {
			opts = append(opts, CategoryOption{
				Name:            ro.Name,
				SerializationID: i,
				Products:        NewIDSet(ro.ProductIDs),
			})
		}
		out = append(out, Category{Name: rc.Name, Options: opts, Exclusive: rc.Exclusive})
	}
	return &CategoryIndex{Categories: out}
}

// RawCategory and RawCategoryOption are the build-time ingestion shapes
// fed to NewCategoryIndex, mirroring RawProduct in internal/catalog.
type RawCategory struct {
	Name      string
	Exclusive bool
	Options   []RawCategoryOption
}

type RawCategoryOption struct {
	Name       string
	ProductIDs []int
}

// Category looks up a category by name.
func (idx *CategoryIndex) Category(name string) (Category, bool) {
	for _, c := range idx.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

func (idx *CategoryIndex) Encode(w *codec.Writer) {
	codec.WriteSlice(w, idx.Categories, encodeCategory)
}

func DecodeCategoryIndex(r *codec.Reader) (*CategoryIndex, error) {
	categories, err := codec.ReadSlice(r, decodeCategory)
	if err != nil {
		return nil, err
	}
	idx := &CategoryIndex{Categories: categories}
	idx.assignSerializationIDs()
	return idx, nil
}

func encodeCategory(w *codec.Writer, c Category) {
	w.WriteString(c.Name)
	w.WriteBool(c.Exclusive)
	codec.WriteSlice(w, c.Options, encodeCategoryOption)
}

func decodeCategory(r *codec.Reader) (Category, error) {
	name, err := r.ReadString()
	if err != nil {
		return Category{}, err
	}
	exclusive, err := r.ReadBool()
	if err != nil {
		return Category{}, err
	}
	options, err := codec.ReadSlice(r, decodeCategoryOption)
	if err != nil {
		return Category{}, err
	}
	return Category{Name: name, Exclusive: exclusive, Options: options}, nil
}

func encodeCategoryOption(w *codec.Writer, o CategoryOption) {
	w.WriteString(o.Name)
	o.Products.Encode(w)
}

func decodeCategoryOption(r *codec.Reader) (CategoryOption, error) {
	name, err := r.ReadString()
	if err != nil {
		return CategoryOption{}, err
	}
	products, err := DecodeIDSet(r)
	if err != nil {
		return CategoryOption{}, err
	}
	return CategoryOption{Name: name, Products: products}, nil
}

// assignSerializationIDs fixes up each option's SerializationID to its
// position after decode, matching the product/vendor convention in
// internal/catalog of deriving the id from wire order rather than storing
// it redundantly.
func (idx *CategoryIndex) assignSerializationIDs() {
	for ci := range idx.Categories {
		for oi := range idx.Categories[ci].Options {
			idx.Categories[ci].Options[oi].SerializationID = oi
		}
	}
}

// CategoryHandler holds the set of currently-active option selections
// across one or more categories and implements is_valid as the
// conjunction of membership across every active option, per 
// §4.5. It is per-query/session state, never shared across concurrent
// queries ().
type CategoryHandler struct {
	active []*IDSet
}

// NewCategoryHandler returns a handler with no active filters: is_valid
// accepts every product.
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// Activate adds categoryName's option optionName to the active filter set.
// A missing category or option is a no-op lookup miss, not an error.
func (h *CategoryHandler) Activate(idx *CategoryIndex, categoryName, optionName string) {
	cat, ok := idx.Category(categoryName)
	if !ok {
		return
	}
	opt, ok := cat.Option(optionName)
	if !ok {
		return
	}
	h.active = append(h.active, opt.Products)
}

// IsValid reports whether productID satisfies every active option filter.
func (h *CategoryHandler) IsValid(productID int) bool {
	for _, set := range h.active {
		if !set.Contains(productID) {
			return false
		}
	}
	return true
}
