// Package facets implements the category, tag, and order indexes:
// product-id membership sets stored as sequential-array sequences on the
// wire, with a side hash set for O(1) membership checks, plus the feature
// filter model applied after facet filtering.
package facets

import "github.com/brightlane/fuzzyindex/internal/codec"

// IDSet is a product serialization-id membership set. On the wire it is a
// sorted, delta-encoded sequential array (codec.WriteSeqArray); in memory
// it additionally carries a hash set built at decode time so contains is
// O(1) rather than a binary search.
type IDSet struct {
	sorted  []uint64
	members map[uint64]struct{}
}

// NewIDSet builds an IDSet from an arbitrary (possibly unsorted,
// possibly duplicated) collection of serialization ids.
func NewIDSet(ids []int) *IDSet {
	members := make(map[uint64]struct{}, len(ids))
	sorted := make([]uint64, 0, len(ids))
	for _, id := range ids {
		u := uint64(id)
		if _, dup := members[u]; dup {
			continue
		}
		members[u] = struct{}{}
		sorted = append(sorted, u)
	}
	return &IDSet{sorted: sorted, members: members}
}

// Contains reports whether id is a member of the set.
func (s *IDSet) Contains(id int) bool {
	if s == nil {
		return false
	}
	_, ok := s.members[uint64(id)]
	return ok
}

// Len returns the number of members.
func (s *IDSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.sorted)
}

// Encode writes the set as a sequential array.
func (s *IDSet) Encode(w *codec.Writer) {
	w.WriteSeqArray(s.sorted)
}

// DecodeIDSet reads a sequential array and rebuilds the membership set.
func DecodeIDSet(r *codec.Reader) (*IDSet, error) {
	sorted, err := r.ReadSeqArray()
	if err != nil {
		return nil, err
	}
	members := make(map[uint64]struct{}, len(sorted))
	for _, id := range sorted {
		members[id] = struct{}{}
	}
	return &IDSet{sorted: sorted, members: members}, nil
}
