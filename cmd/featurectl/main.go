package main

import (
	"os"

	"github.com/on-the-ground/composable_ive_go/cmd/featurectl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
