// Command driftsync inspects and validates paths across local volumes
// and cloud endpoints.
package main

import (
	"os"

	"github.com/skovgaard/driftsync/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
