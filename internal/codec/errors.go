// Package codec implements the self-describing binary wire format shared by
// the ngram index, the product container, and the facet indexes. Every
// multi-byte integer is a LEB128-style varint; sequences are length-prefixed;
// product-id sets use sequential-array (sort + delta) compression.
package codec

import "errors"

// ErrTruncated is returned when the input ends before a frame is fully read.
var ErrTruncated = errors.New("codec: truncated input")

// ErrOverflow is returned when a varint exceeds the maximum of 10
// continuation bytes for a 64-bit value.
var ErrOverflow = errors.New("codec: varint overflow")

// ErrInvalidUTF8 is returned when a length-prefixed string is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("codec: invalid utf-8 in string frame")

// ErrInvalidScalar is returned when a decoded rune is not a valid Unicode
// scalar value.
var ErrInvalidScalar = errors.New("codec: varint does not decode to a valid rune")

// ErrLengthMismatch is returned when a fixed-length array's verified prefix
// does not match the number of elements actually present.
var ErrLengthMismatch = errors.New("codec: fixed-length array length mismatch")

// ErrTrailingBytes is returned by top-level decoders when the input is not
// fully consumed — partial consumption is treated as failure.
var ErrTrailingBytes = errors.New("codec: trailing bytes after decode")
