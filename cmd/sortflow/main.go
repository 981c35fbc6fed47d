// Command sortflow routes parts through workflow rule graphs.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/sortflow/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
