package main

import (
	"fjudcrawl/cmd/fjud-cli/commands"
	"fjudcrawl/lib/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
