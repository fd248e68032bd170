// Command laundromat is the CLI: rank listings locally, serve the API, run
// the ingest worker, and manage the listing store.
package main

import "github.com/marty-droid/laundromat-app-v3/internal/interfaces/cli"

func main() {
	cli.Execute()
}
