package commands

import (
	"fmt"

	"github.com/mamaar/deskcalc/internal/cli"
)

// VersionCommand handles the version command
func VersionCommand(args []string) {
	if len(args) > 0 {
		fmt.Println(`Version Command - Show application version

Usage: deskcalc version

Shows the current version of deskcalc.`)
		return
	}

	cli.ShowVersion()
}
