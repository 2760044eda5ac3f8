// tagnav lists ctags symbols as navigation candidates, from the command
// line or over MCP.
package main

import (
	"os"

	"tagnav/cmd/tagnav/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
