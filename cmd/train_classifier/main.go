package main

import (
	"os"

	"github.com/hollis-dev/aidtag/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
