// Command matchql is a small CLI around the matchql predicate engine.
package main

import (
	"fmt"
	"os"

	"github.com/omniql-engine/matchql/cmd/matchql/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
