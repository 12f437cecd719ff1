// Command simplecache runs traffic generators against a simple cache backed
// by an ideal memory and reports the cache statistics.
package main

import (
	"fmt"
	"os"

	"github.com/tebeka/atexit"
)

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
