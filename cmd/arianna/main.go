package main

import (
	"os"

	"github.com/Qathar8/Arianna-beauty/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
