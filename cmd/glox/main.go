// Command glox is the host shell for the interpreter: argument
// parsing, file reading, REPL line reading, and the process-exit
// mechanism the core (pkg/glox) deliberately stays out of.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/glox/cmd/glox/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
