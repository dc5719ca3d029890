// Package main provides the entry point for formseal-cli.
//
// formseal-cli is the offline token and secret tool for FormSeal.
package main

import (
	"fmt"
	"os"

	"github.com/yndnr/formseal-go/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
