// Command quill is the quill front end CLI entry point.
package main

import (
	"os"

	"github.com/thomasrohde/quill/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
