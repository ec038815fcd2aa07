// Command droneplug resolves the input a CI host delivers to a plugin and
// prints it.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		fatal(err)
		os.Exit(1)
	}
}
