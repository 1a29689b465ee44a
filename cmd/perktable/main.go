package main

import (
	"fmt"
	"os"

	"github.com/mithrel/perktable/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "perktable:", err)
		os.Exit(1)
	}
}
