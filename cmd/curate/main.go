// Package main provides the curate CLI.
package main

import "github.com/mesh-intelligence/curate/internal/cli"

func main() {
	cli.Execute()
}
