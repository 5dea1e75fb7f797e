package feltcodec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevertNeedles(t *testing.T) {
	assert.Equal(t, "0x496e70757420746f6f2073686f727420666f7220617267756d656e7473", inputTooShort)
	assert.Equal(t, "0x496e70757420746f6f206c6f6e6720666f7220617267756d656e7473", inputTooLong)
	assert.Equal(t, "0x4661696c656420746f20646573657269616c697a6520706172616d202331", failedDeserialize)
}

func TestClassifyRevert(t *testing.T) {
	tests := []struct {
		name    string
		reason  string
		wantErr error
	}{
		{
			name:    "entrypoint not found",
			reason:  "Entry point EntryPointSelector(0x12) not found in contract.",
			wantErr: ErrEntrypointNotFound,
		},
		{
			name:    "input too short",
			reason:  "Error in the called contract (0x1): Execution failed. Failure reason: 0x496e70757420746f6f2073686f727420666f7220617267756d656e7473 ('Input too short for arguments').",
			wantErr: ErrInputTooShort,
		},
		{
			name:    "failed to deserialize",
			reason:  "Failure reason: 0x4661696c656420746f20646573657269616c697a6520706172616d202331",
			wantErr: ErrInputTooShort,
		},
		{
			name:    "input too long",
			reason:  "Failure reason: 0x496e70757420746f6f206c6f6e6720666f7220617267756d656e7473",
			wantErr: ErrInputTooLong,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.ErrorIs(t, ClassifyRevert(test.reason), test.wantErr)
		})
	}

	err := ClassifyRevert("u256_sub Overflow")
	var contractErr *ContractError
	require.True(t, errors.As(err, &contractErr))
	assert.Equal(t, "u256_sub Overflow", contractErr.Reason)
	assert.Equal(t, "contract error: u256_sub Overflow", err.Error())
}
