package feltcodec

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/holiman/uint256"
	"lukechampine.com/uint128"
)

// MaxDecimalDigits is the number of decimal digits of 2^256-1, the width of
// a padded decimal u256.
const MaxDecimalDigits = 78

const limbLen = 16

// ConversionErrorKind enumerates the ways a CairoU256 conversion can fail.
type ConversionErrorKind int

const (
	InvalidHex ConversionErrorKind = iota + 1
	InvalidDecimal
	Overflow
	ByteLengthMismatch
)

func (k ConversionErrorKind) String() string {
	switch k {
	case InvalidHex:
		return "invalid hexadecimal string"
	case InvalidDecimal:
		return "invalid decimal string"
	case Overflow:
		return "value does not fit in 256 bits"
	case ByteLengthMismatch:
		return "limb byte length mismatch"
	default:
		return fmt.Sprintf("ConversionErrorKind(%d)", int(k))
	}
}

// ConversionError is returned by the CairoU256 constructors. Input is the
// offending text or value, when there is one.
type ConversionError struct {
	Kind  ConversionErrorKind
	Input string
}

// Sentinels to match a ConversionError kind with errors.Is.
var (
	ErrInvalidHex         = &ConversionError{Kind: InvalidHex}
	ErrInvalidDecimal     = &ConversionError{Kind: InvalidDecimal}
	ErrOverflow           = &ConversionError{Kind: Overflow}
	ErrByteLengthMismatch = &ConversionError{Kind: ByteLengthMismatch}
)

func (e *ConversionError) Error() string {
	if e.Input == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %q", e.Kind, e.Input)
}

// Is matches any *ConversionError of the same kind.
func (e *ConversionError) Is(target error) bool {
	t, ok := target.(*ConversionError)
	return ok && t.Kind == e.Kind
}

// CairoU256 is a core::integer::u256: High*2^128 + Low.
type CairoU256 struct {
	Low  uint128.Uint128
	High uint128.Uint128
}

var _ CairoSerde = (*CairoU256)(nil)

func NewCairoU256(low, high uint128.Uint128) CairoU256 {
	return CairoU256{Low: low, High: high}
}

// U256FromHex parses a big-endian hex string, with or without a 0x prefix.
func U256FromHex(text string) (CairoU256, error) {
	digits := strings.TrimPrefix(text, "0x")
	if digits == "" || digits[0] == '+' || digits[0] == '-' {
		return CairoU256{}, &ConversionError{Kind: InvalidHex, Input: text}
	}
	value, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return CairoU256{}, &ConversionError{Kind: InvalidHex, Input: text}
	}
	return u256FromBytes(value.Bytes(), text)
}

// U256FromDecimal parses an unsigned base 10 string.
func U256FromDecimal(text string) (CairoU256, error) {
	if text == "" || text[0] == '+' || text[0] == '-' {
		return CairoU256{}, &ConversionError{Kind: InvalidDecimal, Input: text}
	}
	value, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return CairoU256{}, &ConversionError{Kind: InvalidDecimal, Input: text}
	}
	return u256FromBytes(value.Bytes(), text)
}

// U256FromBigInt splits value into limbs. Negative values are out of range.
func U256FromBigInt(value *big.Int) (CairoU256, error) {
	if value == nil {
		return CairoU256{}, nil
	}
	if value.Sign() < 0 {
		return CairoU256{}, &ConversionError{Kind: Overflow, Input: value.String()}
	}
	return u256FromBytes(value.Bytes(), value.String())
}

func U256FromUint256(value *uint256.Int) CairoU256 {
	b := value.Bytes32()
	return CairoU256{
		High: uint128.FromBytesBE(b[:limbLen]),
		Low:  uint128.FromBytesBE(b[limbLen:]),
	}
}

// u256FromBytes left-pads a big-endian buffer to 32 bytes and splits it.
func u256FromBytes(raw []byte, input string) (CairoU256, error) {
	if len(raw) > 2*limbLen {
		return CairoU256{}, &ConversionError{Kind: Overflow, Input: input}
	}
	var buf [2 * limbLen]byte
	copy(buf[len(buf)-len(raw):], raw)

	high, err := limbFromBytes(buf[:limbLen])
	if err != nil {
		return CairoU256{}, err
	}
	low, err := limbFromBytes(buf[limbLen:])
	if err != nil {
		return CairoU256{}, err
	}
	return CairoU256{Low: low, High: high}, nil
}

func limbFromBytes(b []byte) (uint128.Uint128, error) {
	if len(b) != limbLen {
		return uint128.Zero, &ConversionError{Kind: ByteLengthMismatch, Input: hex.EncodeToString(b)}
	}
	return uint128.FromBytesBE(b), nil
}

// Bytes32 returns the 32-byte big-endian form: High then Low.
func (u CairoU256) Bytes32() [32]byte {
	var b [32]byte
	u.High.PutBytesBE(b[:limbLen])
	u.Low.PutBytesBE(b[limbLen:])
	return b
}

func (u CairoU256) BigInt() *big.Int {
	b := u.Bytes32()
	return new(big.Int).SetBytes(b[:])
}

func (u CairoU256) Uint256() *uint256.Int {
	b := u.Bytes32()
	return new(uint256.Int).SetBytes32(b[:])
}

// Hex returns "0x" followed by exactly 64 lowercase hex digits.
func (u CairoU256) Hex() string {
	b := u.Bytes32()
	return "0x" + hex.EncodeToString(b[:])
}

// Decimal returns the base 10 form, left-padded with zeros to
// MaxDecimalDigits when padded is set so that strings sort numerically.
func (u CairoU256) Decimal(padded bool) string {
	s := u.Uint256().Dec()
	if padded && len(s) < MaxDecimalDigits {
		return strings.Repeat("0", MaxDecimalDigits-len(s)) + s
	}
	return s
}

func (u CairoU256) String() string {
	return u.Hex()
}

func (u CairoU256) MarshalCairo() ([]*felt.Felt, error) {
	var low, high [limbLen]byte
	u.Low.PutBytesBE(low[:])
	u.High.PutBytesBE(high[:])
	return []*felt.Felt{
		new(felt.Felt).SetBytes(low[:]),
		new(felt.Felt).SetBytes(high[:]),
	}, nil
}

func (u *CairoU256) UnmarshalCairo(data []*felt.Felt) error {
	if len(data) < 2 {
		return fmt.Errorf("insufficient data for uint256: need 2 felts, got %d", len(data))
	}
	low, err := limbFromFelt(data[0])
	if err != nil {
		return fmt.Errorf("uint256 low limb: %w", err)
	}
	high, err := limbFromFelt(data[1])
	if err != nil {
		return fmt.Errorf("uint256 high limb: %w", err)
	}
	u.Low, u.High = low, high
	return nil
}

func (u *CairoU256) CairoSize() int {
	return 2
}

// limbFromFelt reads a u128 stored in a felt, rejecting anything wider.
func limbFromFelt(f *felt.Felt) (uint128.Uint128, error) {
	if f == nil {
		return uint128.Zero, &ConversionError{Kind: ByteLengthMismatch}
	}
	raw := f.Bytes()
	for _, c := range raw[:limbLen] {
		if c != 0 {
			return uint128.Zero, &ConversionError{Kind: Overflow, Input: f.String()}
		}
	}
	return limbFromBytes(raw[limbLen:])
}
