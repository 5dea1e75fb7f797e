// Package main provides the feltcodec command line tool.
//
// Usage:
//
//	feltcodec encode "ipfs://bafy..."
//	feltcodec decode 0x0 0x6869 0x2
//	feltcodec u256 0x1 --output json
//	feltcodec block-id latest
package main

import (
	"io"
	"log"
	"os"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	cmd := newRootCmd(out)
	cmd.SetArgs(args)
	return cmd.Execute()
}
