package catalog

import "github.com/brightlane/fuzzyindex/internal/codec"

// RawProduct is the minimal shape this package needs from the external
// ingestion format. Field mapping from the raw JSON schema to these
// values is the ingestion layer's job, not this package's.
type RawProduct struct {
	ID          string
	Title       string
	Description string
	Vendor      string
	// PriceAmount is the parsed value of price.min.amount.
	PriceAmount float32
	// ImageURL is optional; zero value means "absent" (feature lookups for
	// this product's row simply return an empty string, not a miss, since
	// FeatureSet columns are dense).
	ImageURL string
}

// Feature column keys populated by BuildContainer.
const (
	FeaturePrice    = "price"
	FeatureImageURL = "image_url"
)

// Container owns the product vector, the vendor interner, and the feature
// column store. It is the single ownership root every downstream index
// (ngram data, facets) references by serialization id.
type Container struct {
	Products []Product
	Vendors  *VendorInterner
	Features *FeatureSet
}

// BuildContainer runs a single pass over raw: intern vendors, assign
// serialization ids by input order, and append the price and image_url
// feature columns.
func BuildContainer(raw []RawProduct) *Container {
	vendors := NewVendorInterner()
	features := NewFeatureSet()
	products := make([]Product, 0, len(raw))

	for i, rp := range raw {
		vendorID := vendors.Intern(rp.Vendor)
		products = append(products, Product{
			Description:     rp.Description,
			Title:           rp.Title,
			ID:              rp.ID,
			VendorID:        vendorID,
			SerializationID: i,
		})
		features.AddFloat(FeaturePrice, rp.PriceAmount)
		features.AddString(FeatureImageURL, rp.ImageURL)
	}

	return &Container{Products: products, Vendors: vendors, Features: features}
}

// Product resolves a serialization id to its product record.
func (c *Container) Product(id int) (Product, bool) {
	if id < 0 || id >= len(c.Products) {
		return Product{}, false
	}
	return c.Products[id], true
}

// Len reports the number of products in the container.
func (c *Container) Len() int {
	return len(c.Products)
}

// Encode writes vendor interner ‖ product array ‖ feature column map, the
// fixed frame order for a product container.
func (c *Container) Encode(w *codec.Writer) {
	c.Vendors.Encode(w)
	codec.WriteSlice(w, c.Products, func(w *codec.Writer, p Product) { p.encode(w) })
	c.Features.encode(w)
}

// DecodeContainer reverses Encode.
func DecodeContainer(r *codec.Reader) (*Container, error) {
	vendors, err := DecodeVendorInterner(r)
	if err != nil {
		return nil, err
	}

	n, err := r.ReadLen()
	if err != nil {
		return nil, err
	}
	if n < 0 || n > r.Remaining() {
		return nil, codec.ErrTruncated
	}
	products := make([]Product, 0, n)
	for i := 0; i < n; i++ {
		p, err := decodeProduct(r, i)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	features, err := decodeFeatureSet(r)
	if err != nil {
		return nil, err
	}

	return &Container{Products: products, Vendors: vendors, Features: features}, nil
}
