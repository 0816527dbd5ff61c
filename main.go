package main

import (
	"os"

	"github.com/AndyHazz/quickssh/cmd"
	"github.com/AndyHazz/quickssh/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
