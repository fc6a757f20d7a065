// Polycue - A distinct colour marker generator
//
// Polycue picks maximally distinct colours, groups them into polygonal
// tags and renders each tag as a PNG suitable for visual tracking.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import "github.com/jmylchreest/polycue/internal/cli"

func main() {
	cli.Execute()
}
