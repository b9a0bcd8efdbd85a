// Package main is the entry point for the sitegen CLI.
package main

import "smashers.dev/pkg/sitegen/cmd"

func main() {
	cmd.Execute()
}
