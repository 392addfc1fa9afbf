// main is the entry point for the cohort CLI.
package main

import (
	"github.com/cohort-tools/cohort/cmd"
	"github.com/cohort-tools/cohort/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Cannot run command", err)
	}
}
