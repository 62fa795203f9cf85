// Command anchor runs the Anchor CRM backend: an HTTP API server and an
// MCP server over the same local SQLite database.
package main

import (
	"os"

	"github.com/coastline-labs/anchor/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
