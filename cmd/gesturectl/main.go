// Package main is the entry point for the gesturectl tool.
package main

import (
	"fmt"
	"os"

	"github.com/dshills/gesturekit/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
