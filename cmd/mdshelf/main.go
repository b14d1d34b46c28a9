package main

import (
	"fmt"
	"os"

	"github.com/goliatone/go-mdshelf/cmd/mdshelf/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.ErrorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}
