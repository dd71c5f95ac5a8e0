package main

import (
	"os"

	"github.com/qifconv-dev/qifconv/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
