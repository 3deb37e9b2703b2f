package main

import (
	"fmt"
	"os"

	"github.com/gnolang/tmplfill/cmd"
	"github.com/gnolang/tmplfill/formatter"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, formatter.FormatError(err))
		os.Exit(1)
	}
}
