// Command gosimp runs the gosimp rational simplification tools from the
// command line. Expressions are read as JSON from the first argument or
// from stdin.
package main

import (
	"log"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		log.Fatalf("gosimp: %v", err)
	}
}
