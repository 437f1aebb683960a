package main

import (
	"github.com/devbrewai/veritas/cmd/veritas"
)

func main() {
	// Execute initializes all commands and starts the CLI
	veritas.Execute()
}
