package main

import (
	"pricescraper/cmd/pricescraper/commands"
	"pricescraper/lib/osutil"
)

func main() {
	ctx, cancel := osutil.SignalContext()
	defer cancel()
	commands.ExecuteContext(ctx)
}
