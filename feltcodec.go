// Package feltcodec converts text and 256-bit integers to and from sequences of
// Starknet field elements (felts).
//
// This package includes:
// - ByteArray, the Cairo core::byte_array::ByteArray packing of UTF-8 text
// - Short string encoding of up to 31 bytes of text in a single felt
// - ParseLongString, which accepts both the legacy short-string array and the
//   byte array struct encodings of long strings
// - CairoU256, a u256 split in two 128-bit limbs with hex and decimal forms
// - Helpers to parse block identifiers and classify contract revert reasons
//
// Example usage:
//
//	import "github.com/cartridge-gg/feltcodec"
//
//	ba := feltcodec.EncodeByteArray("ipfs://bafy...")
//	calldata, err := ba.MarshalCairo()
//
//	name, err := feltcodec.ParseLongString(callResult)
//
//	tokenID, err := feltcodec.U256FromHex("0x1")
//	sortKey := tokenID.Decimal(true)
package feltcodec

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
)

var (
	ErrInvalidFelt    = errors.New("invalid felt string")
	ErrFeltOutOfRange = errors.New("value is not below the field modulus")
)

// CairoMarshaler is the interface for types that can be serialized to/from Cairo format
type CairoMarshaler interface {
	MarshalCairo() ([]*felt.Felt, error)
	UnmarshalCairo(data []*felt.Felt) error
}

// CairoSerde provides serialization helpers with size information
type CairoSerde interface {
	CairoMarshaler
	CairoSize() int // -1 for dynamic size, positive number for fixed size
}

// maxWordLen is the number of bytes packed in a single felt by Cairo strings.
const maxWordLen = 31

// ============================================================================
// Helper functions for type conversion between Go types and Cairo felt values
// ============================================================================

// FeltFromUint converts uint64 to *felt.Felt
func FeltFromUint(value uint64) *felt.Felt {
	return new(felt.Felt).SetUint64(value)
}

// UintFromFelt converts *felt.Felt to uint64. ok is false when f is nil or
// does not fit in 64 bits.
func UintFromFelt(f *felt.Felt) (value uint64, ok bool) {
	if f == nil {
		return 0, false
	}
	bigInt := f.BigInt(new(big.Int))
	if !bigInt.IsUint64() {
		return 0, false
	}
	return bigInt.Uint64(), true
}

// FeltFromBigInt converts a non-negative *big.Int to *felt.Felt. Values
// larger than the field modulus are reduced.
func FeltFromBigInt(value *big.Int) *felt.Felt {
	if value == nil {
		return new(felt.Felt)
	}
	return new(felt.Felt).SetBytes(value.Bytes())
}

// BigIntFromFelt converts *felt.Felt to *big.Int
func BigIntFromFelt(f *felt.Felt) *big.Int {
	if f == nil {
		return new(big.Int)
	}
	return f.BigInt(new(big.Int))
}

// BytesFromFelt returns the canonical 32-byte big-endian form of f.
func BytesFromFelt(f *felt.Felt) [32]byte {
	if f == nil {
		return [32]byte{}
	}
	return f.Bytes()
}

// FeltFromString parses a 0x-prefixed hex or a decimal string into a felt.
// Unlike felt.SetString, values at or above the field modulus are rejected
// instead of reduced.
func FeltFromString(s string) (*felt.Felt, error) {
	base := 10
	digits := s
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base, digits = 16, s[2:]
	}
	if digits == "" || digits[0] == '+' || digits[0] == '-' {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFelt, s)
	}
	value, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFelt, s)
	}
	if value.Cmp(fp.Modulus()) >= 0 {
		return nil, fmt.Errorf("%w: %q", ErrFeltOutOfRange, s)
	}
	return FeltFromBigInt(value), nil
}
