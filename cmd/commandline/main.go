package main

import (
	"os"

	"github.com/ethanbaker/memagent/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
