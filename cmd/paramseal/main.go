package main

import (
	"os"

	"paramseal/cmd/paramseal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
