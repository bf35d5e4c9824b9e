// Package main is the entry point for the scrimmetrics CLI tool, which imports
// League of Legends scrim match history and computes player, position and team
// performance metrics.
package main

import "github.com/pable/go-scrim-metrics/cmd"

func main() {
	cmd.Execute()
}
