package feltcodec

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/NethermindEth/juno/core/felt"
)

// ParseErrorKind enumerates the ways ParseLongString can fail.
type ParseErrorKind int

const (
	NoValueFound ParseErrorKind = iota + 1
	ShortStringError
	ByteArrayError
)

func (k ParseErrorKind) String() string {
	switch k {
	case NoValueFound:
		return "no value found"
	case ShortStringError:
		return "short string error"
	case ByteArrayError:
		return "byte array error"
	default:
		return fmt.Sprintf("ParseErrorKind(%d)", int(k))
	}
}

// ParseError is returned by ParseLongString. Err holds the underlying cause
// when there is one.
type ParseError struct {
	Kind ParseErrorKind
	Err  error
}

// Sentinels to match a ParseError kind with errors.Is.
var (
	ErrNoValueFound = &ParseError{Kind: NoValueFound}
	ErrShortString  = &ParseError{Kind: ShortStringError}
	ErrByteArray    = &ParseError{Kind: ByteArrayError}
)

func (e *ParseError) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is matches any *ParseError of the same kind.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}

// ParseLongString decodes a string returned by a contract as a sequence of
// felts. Three layouts are recognised:
//   - a single felt holding a short string;
//   - the legacy array [count, s_1, ..., s_count] of short strings, selected
//     when elements[0]+1 equals len(elements);
//   - a serialized ByteArray [len, data..., pending_word, pending_word_len].
func ParseLongString(elements []*felt.Felt) (string, error) {
	switch len(elements) {
	case 0:
		return "", ErrNoValueFound
	case 1:
		s, err := DecodeShortString(elements[0])
		if err != nil {
			return "", &ParseError{Kind: ShortStringError, Err: err}
		}
		return s, nil
	}

	if isLegacyStringArray(elements) {
		var sb strings.Builder
		for _, e := range elements[1:] {
			s, err := DecodeShortString(e)
			if err != nil {
				return "", &ParseError{Kind: ShortStringError, Err: err}
			}
			sb.WriteString(s)
		}
		return sb.String(), nil
	}

	n := len(elements)
	if n < 3 {
		return "", &ParseError{
			Kind: ByteArrayError,
			Err:  fmt.Errorf("%w: need at least 3 felts, got %d", ErrByteArrayTooShort, n),
		}
	}

	// elements[0] is the length of data on the wire, the layout is fixed by
	// the element count so it is not consulted.
	pendingLen, ok := UintFromFelt(elements[n-1])
	if !ok || pendingLen >= maxWordLen {
		return "", &ParseError{
			Kind: ByteArrayError,
			Err:  fmt.Errorf("%w: got %s", ErrPendingWordLen, elements[n-1]),
		}
	}
	byteArray := ByteArray{
		Data:           elements[1 : n-2],
		PendingWord:    elements[n-2],
		PendingWordLen: int(pendingLen),
	}
	s, err := byteArray.Decode()
	if err != nil {
		return "", &ParseError{Kind: ByteArrayError, Err: err}
	}
	return s, nil
}

func isLegacyStringArray(elements []*felt.Felt) bool {
	if elements[0] == nil {
		return false
	}
	count := new(felt.Felt).Add(elements[0], FeltFromUint(1))
	n, ok := UintFromFelt(count)
	return ok && n == uint64(len(elements))
}

// EncodeLegacyString produces the legacy [count, s_1, ..., s_count] layout.
// Pieces are cut on rune boundaries so that every piece is a valid short
// string by itself.
func EncodeLegacyString(text string) ([]*felt.Felt, error) {
	if !utf8.ValidString(text) {
		return nil, ErrInvalidUTF8
	}

	var pieces []*felt.Felt
	for len(text) > 0 {
		end := len(text)
		if end > maxWordLen {
			end = maxWordLen
			for end > 0 && !utf8.RuneStart(text[end]) {
				end--
			}
		}
		piece, err := EncodeShortString(text[:end])
		if err != nil {
			return nil, err
		}
		pieces = append(pieces, piece)
		text = text[end:]
	}

	return append([]*felt.Felt{FeltFromUint(uint64(len(pieces)))}, pieces...), nil
}
