package codec

import (
	"bytes"
	"math"
	"sort"
	"strings"
	"unicode/utf8"
)

// maxVarintBytes is the maximum number of continuation bytes a 64-bit
// varint may occupy before the encoding is considered malformed.
const maxVarintBytes = 10

// Writer accumulates an encoded byte stream. The zero value is an empty
// Writer ready for use; NewWriter returns one.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty Writer ready to accept frames.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated byte stream. The returned slice is only
// valid until the next write.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len reports how many bytes have been written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// WriteByte writes a single raw byte, satisfying io.ByteWriter.
func (w *Writer) WriteByte(b byte) error {
	return w.buf.WriteByte(b)
}

// WriteRaw writes bytes verbatim, with no length prefix.
func (w *Writer) WriteRaw(b []byte) {
	w.buf.Write(b)
}

// WriteUvarint encodes v as a LEB128-style variable length unsigned integer:
// 7 data bits per byte, high bit set on every byte but the last.
func (w *Writer) WriteUvarint(v uint64) {
	for v >= 0x80 {
		w.buf.WriteByte(byte(v) | 0x80)
		v >>= 7
	}
	w.buf.WriteByte(byte(v))
}

// WriteLen writes a non-negative length as a varint.
func (w *Writer) WriteLen(n int) {
	w.WriteUvarint(uint64(n))
}

// WriteBool writes a single byte: 1 for true, 0 for false.
func (w *Writer) WriteBool(b bool) {
	if b {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

// WriteF32 writes f as 4 big-endian bytes.
func (w *Writer) WriteF32(f float32) {
	bits := math.Float32bits(f)
	w.buf.WriteByte(byte(bits >> 24))
	w.buf.WriteByte(byte(bits >> 16))
	w.buf.WriteByte(byte(bits >> 8))
	w.buf.WriteByte(byte(bits))
}

// WriteRune writes r as its scalar value, varint-encoded.
func (w *Writer) WriteRune(r rune) {
	w.WriteUvarint(uint64(uint32(r)))
}

// WriteString writes a length-prefixed (in bytes) UTF-8 string.
func (w *Writer) WriteString(s string) {
	w.WriteLen(len(s))
	w.buf.WriteString(s)
}

// WriteStringLimited truncates s to at most maxBytes, backing off to the
// last whitespace boundary at or before that limit, then writes it as a
// normal length-prefixed string. If no whitespace boundary exists within
// the limit, it falls back to a raw byte-boundary cut (adjusted to not
// split a UTF-8 rune).
func (w *Writer) WriteStringLimited(s string, maxBytes int) {
	w.WriteString(TruncateAtWhitespace(s, maxBytes))
}

// TruncateAtWhitespace implements serialize_with_limit: if s already fits,
// it is returned unchanged. Otherwise the string is cut at or before
// maxBytes, preferring the last whitespace rune in that window so words are
// not split; if no whitespace exists the cut falls back to the nearest
// rune boundary not exceeding maxBytes.
func TruncateAtWhitespace(s string, maxBytes int) string {
	if len(s) <= maxBytes || maxBytes <= 0 {
		if maxBytes <= 0 {
			return ""
		}
		return s
	}

	window := s[:maxBytes]
	if idx := strings.LastIndexFunc(window, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	}); idx >= 0 {
		return window[:idx]
	}

	// No whitespace boundary: back off to a valid rune boundary.
	for maxBytes > 0 && !utf8.RuneStart(s[maxBytes]) {
		maxBytes--
	}
	return s[:maxBytes]
}

// WriteBytes writes a length-prefixed raw byte slice.
func (w *Writer) WriteBytes(b []byte) {
	w.WriteLen(len(b))
	w.buf.Write(b)
}

// WriteSeqArray implements sequential-array compression for a set of
// non-negative integers: sort ascending, emit len, then emit each value as
// the delta from the previous element (the first element is emitted as-is).
func (w *Writer) WriteSeqArray(values []uint64) {
	sorted := make([]uint64, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	w.WriteLen(len(sorted))
	var prev uint64
	for i, v := range sorted {
		if i == 0 {
			w.WriteUvarint(v)
		} else {
			w.WriteUvarint(v - prev)
		}
		prev = v
	}
}

// WriteSlice writes a length-prefixed sequence, calling encode for each
// element in order.
func WriteSlice[T any](w *Writer, items []T, encode func(*Writer, T)) {
	w.WriteLen(len(items))
	for _, item := range items {
		encode(w, item)
	}
}

// WriteMap writes a length-prefixed sequence of (key, value) pairs.
func WriteMap[K comparable, V any](w *Writer, m map[K]V, encodeKey func(*Writer, K), encodeVal func(*Writer, V)) {
	w.WriteLen(len(m))
	for k, v := range m {
		encodeKey(w, k)
		encodeVal(w, v)
	}
}

// WriteArray writes a fixed-length array: the length prefix is redundant
// with the caller's known length but is verified by ReadArray on decode.
func WriteArray[T any](w *Writer, items []T, encode func(*Writer, T)) {
	WriteSlice(w, items, encode)
}
