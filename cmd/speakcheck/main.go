// Command speakcheck scores pronunciation attempts and runs dialogue
// practice from the terminal.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
