package main

import (
	"os"

	"stormdragon/run-deployer/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
