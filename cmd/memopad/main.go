package main

import (
	"os"

	"github.com/marcus/memopad/internal/cli"
)

// Version is set at build time via ldflags
var Version = ""

func main() {
	if err := cli.Execute(Version); err != nil {
		os.Exit(1)
	}
}
