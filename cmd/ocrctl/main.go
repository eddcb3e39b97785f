// Package main provides the OCR service operator CLI.
package main

import (
	"fmt"
	"os"

	"github.com/glyphlab/ocrserve/cmd/ocrctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
