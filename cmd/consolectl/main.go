// Package main is the consolectl entry point.
package main

import (
	"os"

	"github.com/jsamuelsen/console-client/cmd/consolectl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
