// Command extractview shows a document with its extracted spans linked to
// a categorised outline.
package main

import (
	"os"

	"github.com/custodia-labs/extractview/internal/adapters/driving/cli"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
