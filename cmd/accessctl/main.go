// Package main is the entry point for the accessctl CLI binary.
package main

import (
	"os"

	"accessgraph/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
