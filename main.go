// Package main runs spellhook, the commit-msg spell checker.
package main

import (
	"os"

	"github.com/hashcracky/spellhook/pkg/cmd"
)

// version is the current version of the spellhook application.
var version = "0.1.0"

func main() {
	command := cmd.NewDefaultSpellhookCmd(version)

	err := command.Execute()
	if err != nil {
		cmd.ReportError(os.Stderr, err)
		os.Exit(1)
	}
}
