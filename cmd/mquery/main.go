package main

import (
	"os"

	"github.com/piotrekio/mquery/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
