package main

import "github.com/strrl/claude-explorer/cmd/claude-explorer/commands"

func main() {
	commands.Execute()
}
