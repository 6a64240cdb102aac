package main

import (
	"os"

	"github.com/orchestkit/orchestkit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
