package feltcodec

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/NethermindEth/juno/core/felt"
)

var (
	ErrShortStringTooLong = errors.New("short string exceeds 31 bytes")
	ErrShortStringInvalid = errors.New("short string is not printable utf-8")
)

// EncodeShortString packs s, big-endian, into a single felt.
func EncodeShortString(s string) (*felt.Felt, error) {
	if len(s) > maxWordLen {
		return nil, fmt.Errorf("%w: got %d bytes", ErrShortStringTooLong, len(s))
	}
	return new(felt.Felt).SetBytes([]byte(s)), nil
}

// DecodeShortString interprets the bytes of f as text. Leading and trailing
// NUL bytes are padding; a NUL between two text bytes is rejected.
func DecodeShortString(f *felt.Felt) (string, error) {
	if f == nil {
		return "", fmt.Errorf("%w: nil felt", ErrShortStringInvalid)
	}
	raw := f.Bytes()
	if raw[0] != 0 {
		return "", fmt.Errorf("%w: %s", ErrShortStringTooLong, f)
	}

	text := bytes.Trim(raw[:], "\x00")
	if bytes.IndexByte(text, 0) >= 0 {
		return "", fmt.Errorf("%w: interior NUL in %s", ErrShortStringInvalid, f)
	}
	if !utf8.Valid(text) {
		return "", fmt.Errorf("%w: %s", ErrShortStringInvalid, f)
	}
	return string(text), nil
}
