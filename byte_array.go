package feltcodec

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/NethermindEth/juno/core/felt"
)

// ============================================================================
// ByteArray support for core::byte_array::ByteArray
// ============================================================================

var (
	ErrInvalidUTF8       = errors.New("byte array is not valid utf-8")
	ErrPendingWordLen    = errors.New("pending word length out of range [0, 30]")
	ErrWordOverflow      = errors.New("byte array word exceeds 31 bytes")
	ErrNilWord           = errors.New("byte array word is nil")
	ErrByteArrayTooShort = errors.New("insufficient data for ByteArray")
)

// ByteArray is text packed the way Cairo packs core::byte_array::ByteArray:
// every element of Data holds exactly 31 bytes, and the trailing 0..30 bytes
// sit in the low-order end of PendingWord.
type ByteArray struct {
	Data           []*felt.Felt
	PendingWord    *felt.Felt
	PendingWordLen int
}

var _ CairoSerde = (*ByteArray)(nil)

// NewByteArray packs value into 31-byte words.
func NewByteArray(value []byte) *ByteArray {
	fullChunks := len(value) / maxWordLen
	remainder := len(value) % maxWordLen

	data := make([]*felt.Felt, 0, fullChunks)
	for i := 0; i < fullChunks; i++ {
		chunk := value[i*maxWordLen : (i+1)*maxWordLen]
		data = append(data, new(felt.Felt).SetBytes(chunk))
	}

	pendingWord := new(felt.Felt)
	if remainder > 0 {
		pendingWord.SetBytes(value[fullChunks*maxWordLen:])
	}

	return &ByteArray{
		Data:           data,
		PendingWord:    pendingWord,
		PendingWordLen: remainder,
	}
}

// EncodeByteArray packs the UTF-8 bytes of text.
func EncodeByteArray(text string) *ByteArray {
	return NewByteArray([]byte(text))
}

// DecodeByteArray is a shorthand for b.Decode().
func DecodeByteArray(b *ByteArray) (string, error) {
	return b.Decode()
}

// Bytes reassembles the packed bytes without interpreting them as text.
func (b *ByteArray) Bytes() ([]byte, error) {
	if b.PendingWordLen < 0 || b.PendingWordLen >= maxWordLen {
		return nil, fmt.Errorf("%w: got %d", ErrPendingWordLen, b.PendingWordLen)
	}

	result := make([]byte, 0, len(b.Data)*maxWordLen+b.PendingWordLen)
	for i, word := range b.Data {
		if word == nil {
			return nil, fmt.Errorf("%w: data[%d]", ErrNilWord, i)
		}
		// Full words are 31 bytes, the first byte of the felt is always 0.
		raw := word.Bytes()
		if raw[0] != 0 {
			return nil, fmt.Errorf("%w: data[%d] = %s", ErrWordOverflow, i, word)
		}
		result = append(result, raw[1:]...)
	}

	// Only the low PendingWordLen bytes of the pending word count.
	raw := BytesFromFelt(b.PendingWord)
	return append(result, raw[len(raw)-b.PendingWordLen:]...), nil
}

// Decode returns the text held by b. UTF-8 is validated once over the whole
// buffer, a character may straddle two words.
func (b *ByteArray) Decode() (string, error) {
	buf, err := b.Bytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		return "", ErrInvalidUTF8
	}
	return string(buf), nil
}

// Equal reports whether b and other pack the same words.
func (b *ByteArray) Equal(other *ByteArray) bool {
	if other == nil || len(b.Data) != len(other.Data) || b.PendingWordLen != other.PendingWordLen {
		return false
	}
	for i := range b.Data {
		if !feltEqual(b.Data[i], other.Data[i]) {
			return false
		}
	}
	return feltEqual(b.PendingWord, other.PendingWord)
}

func (b *ByteArray) MarshalCairo() ([]*felt.Felt, error) {
	// ByteArray serialization:
	// 1. Array of bytes31 chunks, length first
	// 2. Pending word (felt)
	// 3. Pending word length (u32)
	if b.PendingWordLen < 0 || b.PendingWordLen >= maxWordLen {
		return nil, fmt.Errorf("%w: got %d", ErrPendingWordLen, b.PendingWordLen)
	}

	result := make([]*felt.Felt, 0, len(b.Data)+3)
	result = append(result, FeltFromUint(uint64(len(b.Data))))
	result = append(result, b.Data...)

	pendingWord := b.PendingWord
	if pendingWord == nil {
		pendingWord = new(felt.Felt)
	}
	result = append(result, pendingWord, FeltFromUint(uint64(b.PendingWordLen)))
	return result, nil
}

func (b *ByteArray) UnmarshalCairo(data []*felt.Felt) error {
	if len(data) < 3 {
		return fmt.Errorf("%w: need at least 3 felts, got %d", ErrByteArrayTooShort, len(data))
	}

	numChunks, ok := UintFromFelt(data[0])
	if !ok || numChunks > uint64(len(data)-3) {
		return fmt.Errorf("%w: length prefix %s with %d felts", ErrByteArrayTooShort, data[0], len(data))
	}
	offset := 1 + int(numChunks)

	pendingLen, ok := UintFromFelt(data[offset+1])
	if !ok || pendingLen >= maxWordLen {
		return fmt.Errorf("%w: got %s", ErrPendingWordLen, data[offset+1])
	}

	b.Data = append(make([]*felt.Felt, 0, numChunks), data[1:offset]...)
	b.PendingWord = data[offset]
	b.PendingWordLen = int(pendingLen)
	return nil
}

func (b *ByteArray) CairoSize() int {
	return -1 // Dynamic size
}

func feltEqual(a, b *felt.Felt) bool {
	if a == nil || b == nil {
		return BytesFromFelt(a) == BytesFromFelt(b)
	}
	return a.Equal(b)
}
