package main

import (
	"cefetid-backend/cmd/portal-cli/commands"
)

func main() {
	commands.Execute()
}
