package feltcodec

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeltConversion(t *testing.T) {
	// Test uint conversion
	value := uint64(123)
	back, ok := UintFromFelt(FeltFromUint(value))
	require.True(t, ok)
	assert.Equal(t, value, back)

	_, ok = UintFromFelt(nil)
	assert.False(t, ok)

	tooWide := FeltFromBigInt(new(big.Int).Lsh(big.NewInt(1), 64))
	_, ok = UintFromFelt(tooWide)
	assert.False(t, ok)

	// Test BigInt conversion
	bigValue := new(big.Int).SetInt64(789)
	assert.Equal(t, 0, BigIntFromFelt(FeltFromBigInt(bigValue)).Cmp(bigValue))
	assert.Equal(t, 0, BigIntFromFelt(nil).Sign())
	assert.True(t, FeltFromBigInt(nil).IsZero())

	raw := BytesFromFelt(FeltFromUint(0x0102))
	assert.Equal(t, byte(0x01), raw[30])
	assert.Equal(t, byte(0x02), raw[31])
	assert.Equal(t, [32]byte{}, BytesFromFelt(nil))
}

func TestFeltFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "hex", input: "0x6869", want: "0x6869"},
		{name: "upper prefix", input: "0X10", want: "0x10"},
		{name: "decimal", input: "26729", want: "0x6869"},
		{name: "empty", input: "", wantErr: ErrInvalidFelt},
		{name: "prefix only", input: "0x", wantErr: ErrInvalidFelt},
		{name: "negative", input: "-1", wantErr: ErrInvalidFelt},
		{name: "bad digit", input: "0xg1", wantErr: ErrInvalidFelt},
		{name: "modulus", input: fp.Modulus().String(), wantErr: ErrFeltOutOfRange},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f, err := FeltFromString(test.input)
			if test.wantErr != nil {
				require.ErrorIs(t, err, test.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, f.String())
		})
	}

	maxFelt := new(big.Int).Sub(fp.Modulus(), big.NewInt(1))
	f, err := FeltFromString(maxFelt.String())
	require.NoError(t, err)
	assert.Equal(t, 0, BigIntFromFelt(f).Cmp(maxFelt))
}
