package catalog

import (
	"fmt"

	"github.com/brightlane/fuzzyindex/internal/codec"
)

// featureKind tags which typed column a Feature column holds.
type featureKind uint8

const (
	featureKindString featureKind = iota
	featureKindFloat
	featureKindUint
)

// Feature is one named, typed column indexed by product serialization id.
// Exactly one of the three slices is populated, matching kind.
type Feature struct {
	kind    featureKind
	strings []string
	floats  []float32
	uints   []uint32
}

// FeatureValue is a column entry returned by FeatureSet.Get, tagged by the
// same three-variant shape as the column itself.
type FeatureValue struct {
	Kind   string // "string", "float", or "uint"
	String string
	Float  float32
	Uint   uint32
}

// FeatureSet is a named column store: each key maps to exactly one typed
// column, with column length equal to the product count.
type FeatureSet struct {
	columns map[string]*Feature
}

// NewFeatureSet returns an empty column store.
func NewFeatureSet() *FeatureSet {
	return &FeatureSet{columns: make(map[string]*Feature)}
}

// AddString appends value to the string column named key, creating it if
// necessary. It panics if key already names a column of a different type —
// a mixed-type column is a programmer error caught at build time.
func (fs *FeatureSet) AddString(key, value string) {
	col := fs.columnFor(key, featureKindString)
	col.strings = append(col.strings, value)
}

// AddFloat appends value to the f32 column named key.
func (fs *FeatureSet) AddFloat(key string, value float32) {
	col := fs.columnFor(key, featureKindFloat)
	col.floats = append(col.floats, value)
}

// AddUint appends value to the u32 column named key.
func (fs *FeatureSet) AddUint(key string, value uint32) {
	col := fs.columnFor(key, featureKindUint)
	col.uints = append(col.uints, value)
}

func (fs *FeatureSet) columnFor(key string, kind featureKind) *Feature {
	col, ok := fs.columns[key]
	if !ok {
		col = &Feature{kind: kind}
		fs.columns[key] = col
		return col
	}
	if col.kind != kind {
		panic(fmt.Sprintf("catalog: feature %q already has a different column type", key))
	}
	return col
}

// Get returns the value stored for key at product serialization id, or
// false if the key or id is absent.
func (fs *FeatureSet) Get(key string, id int) (FeatureValue, bool) {
	col, ok := fs.columns[key]
	if !ok || id < 0 {
		return FeatureValue{}, false
	}
	switch col.kind {
	case featureKindString:
		if id >= len(col.strings) {
			return FeatureValue{}, false
		}
		return FeatureValue{Kind: "string", String: col.strings[id]}, true
	case featureKindFloat:
		if id >= len(col.floats) {
			return FeatureValue{}, false
		}
		return FeatureValue{Kind: "float", Float: col.floats[id]}, true
	case featureKindUint:
		if id >= len(col.uints) {
			return FeatureValue{}, false
		}
		return FeatureValue{Kind: "uint", Uint: col.uints[id]}, true
	default:
		return FeatureValue{}, false
	}
}

// Keys returns the configured feature column names.
func (fs *FeatureSet) Keys() []string {
	keys := make([]string, 0, len(fs.columns))
	for k := range fs.columns {
		keys = append(keys, k)
	}
	return keys
}

func (fs *FeatureSet) encode(w *codec.Writer) {
	codec.WriteMap(w, fs.columns,
		func(w *codec.Writer, k string) { w.WriteString(k) },
		func(w *codec.Writer, f *Feature) { f.encode(w) },
	)
}

func decodeFeatureSet(r *codec.Reader) (*FeatureSet, error) {
	columns, err := codec.ReadMap(r,
		func(r *codec.Reader) (string, error) { return r.ReadString() },
		decodeFeature,
	)
	if err != nil {
		return nil, err
	}
	return &FeatureSet{columns: columns}, nil
}

func (f *Feature) encode(w *codec.Writer) {
	switch f.kind {
	case featureKindString:
		w.WriteUvarint(0)
		codec.WriteSlice(w, f.strings, func(w *codec.Writer, s string) { w.WriteString(s) })
	case featureKindFloat:
		w.WriteUvarint(1)
		codec.WriteSlice(w, f.floats, func(w *codec.Writer, v float32) { w.WriteF32(v) })
	case featureKindUint:
		w.WriteUvarint(2)
		codec.WriteSlice(w, f.uints, func(w *codec.Writer, v uint32) { w.WriteUvarint(uint64(v)) })
	}
}

func decodeFeature(r *codec.Reader) (*Feature, error) {
	tag, err := r.ReadUvarint()
	if err != nil {
		return nil, err
	}
	switch tag {
	case 0:
		vals, err := codec.ReadSlice(r, func(r *codec.Reader) (string, error) { return r.ReadString() })
		if err != nil {
			return nil, err
		}
		return &Feature{kind: featureKindString, strings: vals}, nil
	case 1:
		vals, err := codec.ReadSlice(r, func(r *codec.Reader) (float32, error) { return r.ReadF32() })
		if err != nil {
			return nil, err
		}
		return &Feature{kind: featureKindFloat, floats: vals}, nil
	case 2:
		vals, err := codec.ReadSlice(r, func(r *codec.Reader) (uint32, error) {
			v, err := r.ReadUvarint()
			return uint32(v), err
		})
		if err != nil {
			return nil, err
		}
		return &Feature{kind: featureKindUint, uints: vals}, nil
	default:
		return nil, fmt.Errorf("catalog: unknown feature column tag %d", tag)
	}
}
