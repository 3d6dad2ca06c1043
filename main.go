package main

import (
	"fmt"
	"os"

	"github.com/serialscope/serialscope/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "serialscope: %v\n", err)
		os.Exit(1)
	}
}
