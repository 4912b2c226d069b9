// Package main is the single-binary entrypoint for tempo.
// Tempo is a countdown-driven focus timer: one binary, local first.
package main

import "github.com/tempo-sh/tempo/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
