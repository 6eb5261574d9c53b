package main

import (
	"os"

	"github.com/Jose-Sabater/secret-santa/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
