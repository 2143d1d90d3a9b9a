package main

import (
	"os"

	"github.com/go-ripple/ripple/cmd/ripple/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
