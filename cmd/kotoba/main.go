// Command kotoba segments Japanese text into words and indexes corpus
// vocabulary.
package main

import (
	"os"

	"github.com/cognicore/kotoba/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
