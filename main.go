package main

import (
	"os"

	"github.com/ss13tools/chatfilter/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
