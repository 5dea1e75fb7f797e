package feltcodec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/NethermindEth/starknet.go/rpc"
)

var (
	ErrBlockNumber = errors.New("can't convert block id to u64")
	ErrBlockHash   = errors.New("can't convert block hash from given hexadecimal string")
)

// ParseBlockID reads a block identifier as typed by a user: "latest",
// "pending", a block number, or a block hash in hex.
func ParseBlockID(id string) (rpc.BlockID, error) {
	switch {
	case id == "latest":
		return rpc.WithBlockTag(string(rpc.BlockTagLatest)), nil
	case id == "pending":
		return rpc.WithBlockTag(string(rpc.BlockTagPending)), nil
	case isDecimalDigits(id):
		n, err := strconv.ParseUint(id, 10, 64)
		if err != nil {
			return rpc.BlockID{}, fmt.Errorf("%w: %q", ErrBlockNumber, id)
		}
		return rpc.WithBlockNumber(n), nil
	}

	hash := id
	if !strings.HasPrefix(hash, "0x") && !strings.HasPrefix(hash, "0X") {
		hash = "0x" + hash
	}
	h, err := FeltFromString(hash)
	if err != nil {
		return rpc.BlockID{}, fmt.Errorf("%w: %v", ErrBlockHash, err)
	}
	return rpc.WithBlockHash(h), nil
}

// ParseBlockRange parses both ends of a block range.
func ParseBlockRange(from, to string) (rpc.BlockID, rpc.BlockID, error) {
	fromBlock, err := ParseBlockID(from)
	if err != nil {
		return rpc.BlockID{}, rpc.BlockID{}, fmt.Errorf("from block: %w", err)
	}
	toBlock, err := ParseBlockID(to)
	if err != nil {
		return rpc.BlockID{}, rpc.BlockID{}, fmt.Errorf("to block: %w", err)
	}
	return fromBlock, toBlock, nil
}

func isDecimalDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
