// Command squarepad resizes every image of a folder to a padded square and
// writes the results into dataset/<YYYYMMDDHHMMSS>/.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
