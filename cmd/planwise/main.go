package main

import (
	"fmt"
	"os"

	"github.com/planwise-nz/planwise/internal/config"
	"github.com/planwise-nz/planwise/internal/interfaces/cli"
)

func main() {
	if err := cli.NewRootCommand(config.Version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
