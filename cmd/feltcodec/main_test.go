package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(args, &out)
	return out.String(), err
}

func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "encode byte array",
			args: []string{"encode", "hi"},
			want: "0x0\n0x6869\n0x2\n",
		},
		{
			name: "encode legacy",
			args: []string{"encode", "--legacy", "hi"},
			want: "0x1\n0x6869\n",
		},
		{
			name: "decode byte array",
			args: []string{"decode", "0x0", "0x6869", "0x2"},
			want: "hi\n",
		},
		{
			name: "decode legacy with decimal count",
			args: []string{"decode", "1", "0x6869"},
			want: "hi\n",
		},
		{
			name: "decode short string",
			args: []string{"decode", "0x6869"},
			want: "hi\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := runCmd(t, test.args...)
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := runCmd(t, "decode", "0xnothex")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "argument 0")

	_, err = runCmd(t, "decode", "0x5", "0x1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "byte array error")
}

func TestU256JSONOutput(t *testing.T) {
	got, err := runCmd(t, "u256", "0x100000000000000000000000000000001", "--output", "json")
	require.NoError(t, err)

	var o u256Output
	require.NoError(t, json.Unmarshal([]byte(got), &o))
	assert.Equal(t, "0x"+strings.Repeat("0", 31)+"1"+strings.Repeat("0", 31)+"1", o.Hex)
	assert.Equal(t, "340282366920938463463374607431768211457", o.Decimal)
	assert.Len(t, o.PaddedDecimal, 78)
	assert.Equal(t, "0x1", o.Low)
	assert.Equal(t, "0x1", o.High)
}

func TestU256DecimalInput(t *testing.T) {
	got, err := runCmd(t, "u256", "--decimal-input", "255")
	require.NoError(t, err)
	assert.Contains(t, got, "hex:            0x"+strings.Repeat("0", 62)+"ff\n")

	_, err = runCmd(t, "u256", "0xzz")
	require.Error(t, err)
}

func TestOutputFromEnv(t *testing.T) {
	t.Setenv("FELTCODEC_OUTPUT", "json")

	got, err := runCmd(t, "encode", "hi")
	require.NoError(t, err)

	var felts []string
	require.NoError(t, json.Unmarshal([]byte(got), &felts))
	assert.Equal(t, []string{"0x0", "0x6869", "0x2"}, felts)
}

func TestInvalidConfig(t *testing.T) {
	_, err := runCmd(t, "encode", "hi", "--output", "yaml")
	require.Error(t, err)

	_, err = runCmd(t, "encode", "hi", "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrUnknownLogLevel.Error())

	t.Setenv("FELTCODEC_LOG_LEVEL", "loud")
	_, err = runCmd(t, "encode", "hi")
	require.ErrorIs(t, err, ErrUnknownLogLevel)
}

func TestDebugEnv(t *testing.T) {
	t.Setenv("FELTCODEC_DEBUG", "1")
	got, err := runCmd(t, "encode", "hi")
	require.NoError(t, err)
	// Logs go to stderr, stdout only carries the result.
	assert.Equal(t, "0x0\n0x6869\n0x2\n", got)
}

func TestBlockID(t *testing.T) {
	got, err := runCmd(t, "block-id", "latest")
	require.NoError(t, err)
	assert.Contains(t, got, "latest")

	_, err = runCmd(t, "block-id", "not a block")
	require.Error(t, err)
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    LogLevel
		wantErr bool
	}{
		{name: "debug", input: "debug", want: DEBUG},
		{name: "upper case", input: "WARN", want: WARN},
		{name: "error", input: "error", want: ERROR},
		{name: "unknown", input: "trace", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var l LogLevel
			err := l.UnmarshalText([]byte(test.input))
			if test.wantErr {
				require.ErrorIs(t, err, ErrUnknownLogLevel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, l)
			assert.Equal(t, strings.ToLower(test.input), l.String())
		})
	}
}
