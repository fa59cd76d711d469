package main

import (
	"fmt"
	"os"

	"github.com/brewkit/brewkit/cmd"
)

func main() {
	if err := cmd.NewRootCommand(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
