// Package main provides the reindex CLI.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newCLI().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
