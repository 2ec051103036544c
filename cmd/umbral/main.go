// Command umbral is the CLI front end for the Umbral scripting language:
// a thin entry point over cmd/umbral/cmd, which builds the cobra command
// tree around pkg/umbral.
package main

import (
	"os"

	"github.com/hersac/umbral/cmd/umbral/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
