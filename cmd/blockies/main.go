// Blockies - A deterministic identicon generator
//
// Blockies turns a seed string into a small, symmetric, coloured block
// identicon and writes it as PNG, SVG, JSON, HTML or through renderer plugins.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"github.com/jmylchreest/blockies/internal/cli"
)

func main() {
	cli.Execute()
}
