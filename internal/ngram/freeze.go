package ngram

import (
	"math"
	"sort"

	"github.com/brightlane/fuzzyindex/internal/codec"
)

// DefaultArenaBlockSize batches query-node allocation; it has no semantic
// effect, only a minor allocation-count tradeoff.
const DefaultArenaBlockSize = 1024

// Index is the frozen, query-time N-gram index: an arena of immutable
// nodes, a root map, and the popularity-cutoff, serialization-id-sorted
// data map from N-tuple key to matching products.
type Index struct {
	N     int
	arena *codec.Arena[QueryNode]
	Roots map[rune]*QueryNode
	Data  map[string][]int32
}

// Arena exposes the backing arena, mainly so the codec package's
// ArenaDecoder contract has somewhere to place decoded nodes.
func (idx *Index) Arena() *codec.Arena[QueryNode] {
	return idx.arena
}

// Freeze performs the build-to-query conversion: a post-order walk
// assigning weight = own/parent occurrences, children sorted by
// descending weight, then the popularity cutoff over data.
//
// cutoffPct is the data cutoff percentage (default 0.80). An N-tuple is kept
// when its product-list length does not exceed floor(cutoffPct *
// totalProducts); it is dropped only once it strictly exceeds that
// threshold, so a tuple occurring in exactly 80% of products is kept — see
// DESIGN.md for why the boundary resolves this way.
func Freeze(b *Builder, totalProducts int, cutoffPct float64) *Index {
	arena := codec.NewArena[QueryNode](DefaultArenaBlockSize)

	var totalRootOcc int64
	for _, r := range b.Roots() {
		totalRootOcc += r.Occurrences
	}

	roots := make(map[rune]*QueryNode, len(b.Roots()))
	for g, r := range b.Roots() {
		roots[g] = freezeNode(r, totalRootOcc, arena)
	}

	cutoff := int(math.Floor(cutoffPct * float64(totalProducts)))
	data := make(map[string][]int32, len(b.Data()))
	for key, ids := range b.Data() {
		if len(ids) > cutoff {
			continue
		}
		sorted := make([]int32, len(ids))
		copy(sorted, ids)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		data[key] = sorted
	}

	return &Index{N: b.N(), arena: arena, Roots: roots, Data: data}
}

func freezeNode(b *BuildNode, parentOccurrences int64, arena *codec.Arena[QueryNode]) *QueryNode {
	qn := arena.Alloc()
	qn.Item = b.Gram
	if parentOccurrences > 0 {
		qn.Weight = float32(b.Occurrences) / float32(parentOccurrences)
	}

	children := make([]*QueryNode, 0, len(b.Children))
	for _, c := range b.Children {
		children = append(children, freezeNode(c, b.Occurrences, arena))
	}
	sort.SliceStable(children, func(i, j int) bool {
		if children[i].Weight != children[j].Weight {
			return children[i].Weight > children[j].Weight
		}
		return children[i].Item < children[j].Item
	})

	qn.ByOccurrences = children
	qn.Items = make(map[rune]*QueryNode, len(children))
	for _, c := range children {
		qn.Items[c.Item] = c
	}
	return qn
}
