package main

import (
	"os"

	"github.com/lingvo-app/lingvo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
