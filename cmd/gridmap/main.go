package main

import (
	"fmt"
	"os"

	"github.com/teranos/gridmap/cmd/gridmap/commands"
	"github.com/teranos/gridmap/errors"
	"github.com/teranos/gridmap/logger"
)

// Exit codes
const (
	exitFailure = 1 // Any other failure
	exitConfig  = 2 // Missing or invalid config, missing network model
)

func main() {
	err := commands.Execute()
	logger.Cleanup()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if hints := errors.FlattenHints(err); hints != "" {
			fmt.Fprintln(os.Stderr, "Hint:", hints)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode separates configuration problems from failures while reading or rendering
func exitCode(err error) int {
	if errors.IsConfigError(err) {
		return exitConfig
	}
	return exitFailure
}
