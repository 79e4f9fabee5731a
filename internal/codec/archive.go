package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Archive framing wraps a codec payload for on-disk or object-storage use.
// The wire format produced by the ngram/container/facet encoders is never
// itself compressed or magic-prefixed — that format must stay
// self-describing and random-access-free. Archive framing is a separate,
// outer concern: a 4-byte magic tag followed by either the raw payload or a
// zstd frame around it.
var (
	magicPlain = [4]byte{'F', 'Z', 'X', '1'}
	magicZstd  = [4]byte{'F', 'Z', 'X', 'Z'}
)

// ErrUnknownArchiveMagic is returned when the leading 4 bytes do not match
// a known archive tag.
var ErrUnknownArchiveMagic = errors.New("codec: unrecognized archive magic")

// WriteArchive writes payload to w, optionally zstd-compressing it first.
func WriteArchive(w io.Writer, payload []byte, compress bool) error {
	if !compress {
		if _, err := w.Write(magicPlain[:]); err != nil {
			return err
		}
		_, err := w.Write(payload)
		return err
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return fmt.Errorf("codec: create zstd encoder: %w", err)
	}
	defer enc.Close()

	compressed := enc.EncodeAll(payload, nil)
	if _, err := w.Write(magicZstd[:]); err != nil {
		return err
	}
	_, err = w.Write(compressed)
	return err
}

// ReadArchive reads an archive produced by WriteArchive and returns the
// original codec payload, transparently undoing zstd framing if present.
func ReadArchive(r io.Reader) ([]byte, error) {
	all, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(all) < 4 {
		return nil, ErrTruncated
	}

	var magic [4]byte
	copy(magic[:], all[:4])
	body := all[4:]

	switch magic {
	case magicPlain:
		return body, nil
	case magicZstd:
		dec, err := zstd.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("codec: create zstd decoder: %w", err)
		}
		defer dec.Close()
		out, err := io.ReadAll(dec)
		if err != nil {
			return nil, fmt.Errorf("codec: decompress archive: %w", err)
		}
		return out, nil
	default:
		return nil, ErrUnknownArchiveMagic
	}
}
