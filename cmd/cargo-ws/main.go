package main

import (
	"errors"
	"os"

	"github.com/jakoblorz/cargo-ws/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		// Propagate cargo's own exit status from `cargo-ws exec`.
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}
