package main

import (
	"fmt"
	"os"

	"github.com/pace-rs/pace/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "pace: %v\n", err)
		os.Exit(1)
	}
}
