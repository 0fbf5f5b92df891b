/*
Package main provides the formrelay CLI entry point.
*/
package main

import (
	"os"

	"github.com/dmitrymomot/formrelay/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
