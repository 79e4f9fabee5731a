package ngram

import "github.com/brightlane/fuzzyindex/internal/codec"

// nodeDecoder satisfies codec.ArenaDecoder: decoding a subtree needs a
// destination arena, and returns a borrowed pointer into it rather than an
// owned value, arena-aware decoder contract.
type nodeDecoder struct{}

var _ codec.ArenaDecoder[QueryNode] = nodeDecoder{}

func (nodeDecoder) DecodeInto(r *codec.Reader, arena *codec.Arena[QueryNode]) (*QueryNode, error) {
	return decodeNode(r, arena)
}

// Encode writes the GramIndex frame: N, the roots map (gram -> subtree),
// then the data map (N-tuple -> sequential-array of serialization ids).
// Each subtree node serializes as item ‖ weight ‖ by_occurrences, with
// children recursively nested; parent-to-child topology and Items are
// both reconstructed on decode.
func (idx *Index) Encode(w *codec.Writer) {
	w.WriteUvarint(uint64(idx.N))

	codec.WriteMap(w, idx.Roots,
		func(w *codec.Writer, g rune) { w.WriteRune(g) },
		func(w *codec.Writer, n *QueryNode) { encodeNode(w, n) },
	)

	w.WriteLen(len(idx.Data))
	for key, ids := range idx.Data {
		runes := []rune(key)
		codec.WriteArray(w, runes, func(w *codec.Writer, r rune) { w.WriteRune(r) })

		u64ids := make([]uint64, len(ids))
		for i, id := range ids {
			u64ids[i] = uint64(uint32(id))
		}
		w.WriteSeqArray(u64ids)
	}
}

// DecodeIndex reverses Encode. If the tuple length recorded for a data
// entry does not equal the index's own N, decode fails at that entry
// rather than silently accepting a tuple width the search algorithm
// cannot use.
func DecodeIndex(r *codec.Reader) (*Index, error) {
	nVal, err := r.ReadUvarint()
	if err != nil {
		return nil, err
	}
	n := int(nVal)

	arena := codec.NewArena[QueryNode](DefaultArenaBlockSize)
	var dec nodeDecoder

	roots, err := codec.ReadMap(r,
		func(r *codec.Reader) (rune, error) { return r.ReadRune() },
		func(r *codec.Reader) (*QueryNode, error) { return dec.DecodeInto(r, arena) },
	)
	if err != nil {
		return nil, err
	}

	dataLen, err := r.ReadLen()
	if err != nil {
		return nil, err
	}
	if dataLen < 0 || dataLen > r.Remaining() {
		return nil, codec.ErrTruncated
	}

	data := make(map[string][]int32, dataLen)
	for i := 0; i < dataLen; i++ {
		runes, err := codec.ReadArray(r, n, func(r *codec.Reader) (rune, error) { return r.ReadRune() })
		if err != nil {
			return nil, err
		}
		ids64, err := r.ReadSeqArray()
		if err != nil {
			return nil, err
		}
		ids := make([]int32, len(ids64))
		for j, v := range ids64 {
			ids[j] = int32(uint32(v))
		}
		data[string(runes)] = ids
	}

	return &Index{N: n, arena: arena, Roots: roots, Data: data}, nil
}

func encodeNode(w *codec.Writer, n *QueryNode) {
	w.WriteRune(n.Item)
	w.WriteF32(n.Weight)
	codec.WriteSlice(w, n.ByOccurrences, func(w *codec.Writer, c *QueryNode) { encodeNode(w, c) })
}

func decodeNode(r *codec.Reader, arena *codec.Arena[QueryNode]) (*QueryNode, error) {
	item, err := r.ReadRune()
	if err != nil {
		return nil, err
	}
	weight, err := r.ReadF32()
	if err != nil {
		return nil, err
	}
	children, err := codec.ReadSlice(r, func(r *codec.Reader) (*QueryNode, error) { return decodeNode(r, arena) })
	if err != nil {
		return nil, err
	}

	node := arena.Alloc()
	node.Item = item
	node.Weight = weight
	node.ByOccurrences = children
	node.Items = make(map[rune]*QueryNode, len(children))
	for _, c := range children {
		node.Items[c.Item] = c
	}
	return node, nil
}
