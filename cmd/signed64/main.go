// Command signed64 evaluates, logs and audits sign-magnitude 64-bit
// arithmetic.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/signed64/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
