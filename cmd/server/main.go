// Package main implements the generic CRUD API server and the command-line
// tools that operate on it: serving, schema migrations and a small client for
// the items and categories collections.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
