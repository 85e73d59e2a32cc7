// ABOUTME: Entry point for the jobboard CLI
// ABOUTME: Terminal client for the job board API with scriptable commands and an interactive TUI

package main

import (
	"fmt"
	"os"

	"github.com/markalston/jobboard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
