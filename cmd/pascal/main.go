package main

import (
	"os"

	"github.com/msto63/pascal/cmd/pascal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
