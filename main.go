// Package main is the entry point for the paperlens CLI.
package main

import "github.com/paperlens/paperlens-cli/cmd"

var version = "dev"

func main() {
	cmd.SetVersion(version)
	cmd.Execute()
}
