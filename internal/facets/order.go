package facets

import (
	"math"
	"sort"

	"github.com/brightlane/fuzzyindex/internal/codec"
)

// OrderIndex maps an order name (e.g. "Alphabetical", "Price low to
// high") to a precomputed rank vector: rank[serializationID] is that
// product's position in the order. Only the rank vector survives
// freezing — the key-extractor closures used to build it are build-time
// only.
type OrderIndex struct {
	ranks map[string][]uint32
}

// KeyFunc extracts the sort key for a product's serialization id. Builders
// register one KeyFunc per order name.
type KeyFunc func(serializationID int) float64

// NewOrderBuilder starts an empty order registry over a catalog of the
// given size.
func NewOrderBuilder(productCount int) *OrderBuilder {
	return &OrderBuilder{productCount: productCount, extractors: map[string]KeyFunc{}, order: nil}
}

// OrderBuilder accumulates named key-extractors before Freeze inverts each
// into a rank vector.
type OrderBuilder struct {
	productCount int
	extractors   map[string]KeyFunc
	order        []string
}

// Register adds an order under name, using key to extract each product's
// sort key. Freeze visits orders in registration order; the frozen
// OrderIndex keeps no registration order (Names returns names sorted
// alphabetically, and ranks are looked up by name).
func (b *OrderBuilder) Register(name string, key KeyFunc) {
	if _, exists := b.extractors[name]; !exists {
		b.order = append(b.order, name)
	}
	b.extractors[name] = key
}

// Freeze sorts each registered order by its key (NaN treated as equal to
// every other value, see keyLess) and inverts the resulting permutation
// into rank[serializationID] = position.
func (b *OrderBuilder) Freeze() *OrderIndex {
	ranks := make(map[string][]uint32, len(b.extractors))
	for _, name := range b.order {
		key := b.extractors[name]
		perm := make([]int, b.productCount)
		for i := range perm {
			perm[i] = i
		}
		sort.SliceStable(perm, func(i, j int) bool {
			return keyLess(key(perm[i]), key(perm[j]))
		})

		rank := make([]uint32, b.productCount)
		for position, sid := range perm {
			rank[sid] = uint32(position)
		}
		ranks[name] = rank
	}
	return &OrderIndex{ranks: ranks}
}

// keyLess implements a partial order with NaN treated as equal to any
// value (never less, never greater).
func keyLess(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	return a < b
}

// Rank returns the rank vector for orderName, if registered.
func (idx *OrderIndex) Rank(orderName string) ([]uint32, bool) {
	r, ok := idx.ranks[orderName]
	return r, ok
}

// Names returns every registered order name.
func (idx *OrderIndex) Names() []string {
	out := make([]string, 0, len(idx.ranks))
	for name := range idx.ranks {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (idx *OrderIndex) Encode(w *codec.Writer) {
	codec.WriteMap(w, idx.ranks, (*codec.Writer).WriteString, encodeRankVector)
}

func DecodeOrderIndex(r *codec.Reader) (*OrderIndex, error) {
	ranks, err := codec.ReadMap(r, (*codec.Reader).ReadString, decodeRankVector)
	if err != nil {
		return nil, err
	}
	return &OrderIndex{ranks: ranks}, nil
}

func encodeRankVector(w *codec.Writer, rank []uint32) {
	w.WriteLen(len(rank))
	for _, v := range rank {
		w.WriteUvarint(uint64(v))
	}
}

func decodeRankVector(r *codec.Reader) ([]uint32, error) {
	n, err := r.ReadLen()
	if err != nil {
		return nil, err
	}
	if n < 0 || n > r.Remaining() {
		return nil, codec.ErrTruncated
	}
	out := make([]uint32, n)
	for i := range out {
		v, err := r.ReadUvarint()
		if err != nil {
			return nil, err
		}
		out[i] = uint32(v)
	}
	return out, nil
}
