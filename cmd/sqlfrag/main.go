// Command sqlfrag compiles SQL fragments and simplifies assembled queries.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/sqlfrag/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
