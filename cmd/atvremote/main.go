// Command atvremote pairs with and controls Android TV devices over the
// remote protocol.
package main

import (
	"os"

	"github.com/atvremote/atvremote-go/cmd/atvremote/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
