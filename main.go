// broken-time is a calculator for clock durations that run past 24 hours.
package main

import (
	"fmt"
	"os"

	"github.com/jparise/broken-time/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
