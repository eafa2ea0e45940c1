package main

import (
	"os"

	"github.com/fxreport-dev/fxreport/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
