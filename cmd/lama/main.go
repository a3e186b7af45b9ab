package main

import "martianoff/lama/cmd/lama/commands"

func main() {
	commands.Execute()
}
