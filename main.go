package main

import "market-ingest/cmd"

func main() {
	cmd.Execute()
}
