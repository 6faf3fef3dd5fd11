// Package main is the entry point for the whisprtray indicator.
package main

import (
	"os"

	"github.com/whispr-io/whisprtray/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
