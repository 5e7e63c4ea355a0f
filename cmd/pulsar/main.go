// Command pulsar is the reference CLI for the Pulsar stack language: a
// thin shell over the lexer, parser, and execution engine in
// internal/lexer, internal/parser, and internal/vm.
package main

import (
	"fmt"
	"os"

	"github.com/pulsar-lang/pulsar/cmd/pulsar/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
