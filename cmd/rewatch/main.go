package main

import (
	"os"

	"github.com/harrison/rewatch/internal/cmd"
)

func main() {
	rootCmd := cmd.NewRootCommand()

	// Errors have already been reported by the layer that detected them
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
