package feltcodec

import (
	"errors"
	"strings"
)

var (
	ErrEntrypointNotFound = errors.New("entrypoint not found")
	ErrInputTooShort      = errors.New("input too short for arguments")
	ErrInputTooLong       = errors.New("input too long for arguments")
)

// ContractError is a revert that matches none of the known reasons.
type ContractError struct {
	Reason string
}

func (e *ContractError) Error() string {
	return "contract error: " + e.Reason
}

const entrypointNotFound = "not found in contract"

// Revert reasons are emitted as hex encoded short strings.
var (
	inputTooShort     = mustShortStringHex("Input too short for arguments")
	inputTooLong      = mustShortStringHex("Input too long for arguments")
	failedDeserialize = mustShortStringHex("Failed to deserialize param #1")
)

// ClassifyRevert maps the revert reason of a failed contract call to one of
// the package errors, or to a *ContractError carrying the reason verbatim.
func ClassifyRevert(reason string) error {
	switch {
	case strings.Contains(reason, entrypointNotFound):
		return ErrEntrypointNotFound
	case strings.Contains(reason, inputTooShort), strings.Contains(reason, failedDeserialize):
		return ErrInputTooShort
	case strings.Contains(reason, inputTooLong):
		return ErrInputTooLong
	default:
		return &ContractError{Reason: reason}
	}
}

func mustShortStringHex(s string) string {
	f, err := EncodeShortString(s)
	if err != nil {
		panic(err)
	}
	return f.String()
}
