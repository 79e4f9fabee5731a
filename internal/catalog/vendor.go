package catalog

import "github.com/brightlane/fuzzyindex/internal/codec"

// VendorInterner assigns each distinct vendor name a dense, zero-based id in
// insertion order. Ids are stable for the lifetime of the container.
type VendorInterner struct {
	byName map[string]uint32
	byID   []string
}

// NewVendorInterner returns an empty interner.
func NewVendorInterner() *VendorInterner {
	return &VendorInterner{byName: make(map[string]uint32)}
}

// Intern returns the id for name, assigning a new one if name has not been
// seen before.
func (v *VendorInterner) Intern(name string) uint32 {
	if id, ok := v.byName[name]; ok {
		return id
	}
	id := uint32(len(v.byID))
	v.byName[name] = id
	v.byID = append(v.byID, name)
	return id
}

// Lookup returns the id already assigned to name, if any.
func (v *VendorInterner) Lookup(name string) (uint32, bool) {
	id, ok := v.byName[name]
	return id, ok
}

// Name returns the vendor name for id. It panics if id is out of range,
// since every reference into the interner is produced by this package and
// is expected to be valid.
func (v *VendorInterner) Name(id uint32) string {
	return v.byID[id]
}

// Len returns the number of distinct vendors interned.
func (v *VendorInterner) Len() int {
	return len(v.byID)
}

// Encode serializes the interner as len followed by names in id order.
func (v *VendorInterner) Encode(w *codec.Writer) {
	codec.WriteSlice(w, v.byID, func(w *codec.Writer, name string) { w.WriteString(name) })
}

// DecodeVendorInterner reverses Encode.
func DecodeVendorInterner(r *codec.Reader) (*VendorInterner, error) {
	names, err := codec.ReadSlice(r, func(r *codec.Reader) (string, error) { return r.ReadString() })
	if err != nil {
		return nil, err
	}
	byName := make(map[string]uint32, len(names))
	for i, n := range names {
		byName[n] = uint32(i)
	}
	return &VendorInterner{byName: byName, byID: names}, nil
}
