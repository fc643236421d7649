package main

import (
	"os"

	"github.com/fluentwave/fluentwave/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
