package main

import (
	"github.com/cottand/dnf/cmd"
	"os"
)

func main() {
	err := cmd.NewRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}
