package main

import (
	"os"

	"github.com/autover/autover/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
