package facets

import "github.com/brightlane/fuzzyindex/internal/catalog"

// FeatureFilter is applied after category/tag filters, immediately before
// ordering. Exactly one of the two constructors below should be used; the
// zero value rejects every product.
type FeatureFilter struct {
	key string

	isRange bool

	// exact
	exact catalog.FeatureValue

	// range: min/max are nil for "unbounded".
	// Bounds compare against the float representation of the column —
	// float and uint columns both participate in range filters.
	min, max                   *float64
	minInclusive, maxInclusive bool
}

// NewExactFilter matches products whose key column equals value exactly.
func NewExactFilter(key string, value catalog.FeatureValue) FeatureFilter {
	return FeatureFilter{key: key, exact: value}
}

// RangeBound describes one side of a range filter: nil Value means
// unbounded on that side.
type RangeBound struct {
	Value     *float64
	Inclusive bool
}

// NewRangeFilter matches products whose key column falls within [lo, hi]
// (each side open, closed, or unbounded per its Inclusive/Value fields).
func NewRangeFilter(key string, lo, hi RangeBound) FeatureFilter {
	return FeatureFilter{
		key:          key,
		isRange:      true,
		min:          lo.Value,
		minInclusive: lo.Inclusive,
		max:          hi.Value,
		maxInclusive: hi.Inclusive,
	}
}

// Matches reports whether productID's value for f.key satisfies the
// filter. A product missing the column fails the filter (never a panic
// or error — a lookup miss).
func (f FeatureFilter) Matches(fs *catalog.FeatureSet, productID int) bool {
	val, ok := fs.Get(f.key, productID)
	if !ok {
		return false
	}
	if !f.isRange {
		return featureEqual(val, f.exact)
	}

	num, ok := featureAsFloat(val)
	if !ok {
		return false
	}
	if f.min != nil {
		if f.minInclusive {
			if num < *f.min {
				return false
			}
		} else if num <= *f.min {
			return false
		}
	}
	if f.max != nil {
		if f.maxInclusive {
			if num > *f.max {
				return false
			}
		} else if num >= *f.max {
			return false
		}
	}
	return true
}

func featureEqual(a, b catalog.FeatureValue) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case "string":
		return a.String == b.String
	case "float":
		return a.Float == b.Float
	case "uint":
		return a.Uint == b.Uint
	default:
		return false
	}
}

func featureAsFloat(v catalog.FeatureValue) (float64, bool) {
	switch v.Kind {
	case "float":
		return float64(v.Float), true
	case "uint":
		return float64(v.Uint), true
	default:
		return 0, false
	}
}
