// Package main is the entry point for the iplmetrics CLI tool, which loads
// IPL match and delivery records and computes season statistics.
package main

import "github.com/pable/go-ipl-metrics/cmd"

func main() {
	cmd.Execute()
}
