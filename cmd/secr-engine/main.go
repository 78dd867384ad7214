// Command secr-engine hosts the SECR emissions calculation engine: serve it
// over HTTP, run a single calculation from a request file, or dump the loaded
// factor catalog.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
