// Package main provides the entry point for cocktailctl, the administrative CLI.
package main

import (
	"fmt"
	"os"

	"github.com/cocktailapp/cocktail-server/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
