// Package main is the entry point for the trackprint CLI.
//
// Usage:
//
//	trackprint [flags] <command> [args]
//
// Commands:
//
//	extract - extract global audio features and an embedding from a file
//	compare - compare the embeddings of two files under a distance metric
package main

import (
	"fmt"
	"os"

	"github.com/audiomesh/trackprint/cmd/trackprint/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
