package catalog

import "github.com/brightlane/fuzzyindex/internal/codec"

// DescriptionLimitBytes bounds the on-disk size of a product description;
// longer descriptions are truncated at a whitespace boundary (or, failing
// that, a raw byte boundary) before serialization.
const DescriptionLimitBytes = 100

// Product is a single catalog entry. SerializationID is the product's
// position in the container's product vector and is the sole
// cross-reference used by every downstream index (ngram data, facet
// membership sets, order permutations).
type Product struct {
	Description     string
	Title           string
	ID              string
	VendorID        uint32
	SerializationID int
}

// Vendor resolves the product's vendor name through interner.
func (p Product) Vendor(interner *VendorInterner) string {
	return interner.Name(p.VendorID)
}

// Equal compares two products field by field, comparing descriptions in
// their canonical (post-truncation) form rather than allowing prefix
// equality, so a product equals its own decoded copy.
func (p Product) Equal(other Product) bool {
	return codec.TruncateAtWhitespace(p.Description, DescriptionLimitBytes) ==
		codec.TruncateAtWhitespace(other.Description, DescriptionLimitBytes) &&
		p.Title == other.Title &&
		p.ID == other.ID &&
		p.VendorID == other.VendorID &&
		p.SerializationID == other.SerializationID
}

// encode writes the on-disk product record: truncated description, title,
// id, vendor serialization id.
func (p Product) encode(w *codec.Writer) {
	w.WriteStringLimited(p.Description, DescriptionLimitBytes)
	w.WriteString(p.Title)
	w.WriteString(p.ID)
	w.WriteUvarint(uint64(p.VendorID))
}

// decodeProduct reads a product record and stamps it with the serialization
// id implied by its position in the container's product array (decode-time
// assignment, not carried on the wire).
func decodeProduct(r *codec.Reader, serializationID int) (Product, error) {
	description, err := r.ReadString()
	if err != nil {
		return Product{}, err
	}
	title, err := r.ReadString()
	if err != nil {
		return Product{}, err
	}
	id, err := r.ReadString()
	if err != nil {
		return Product{}, err
	}
	vendorID, err := r.ReadUvarint()
	if err != nil {
		return Product{}, err
	}
	return Product{
		Description:     description,
		Title:           title,
		ID:              id,
		VendorID:        uint32(vendorID),
		SerializationID: serializationID,
	}, nil
}
