package main

import "artshare/cmd/cli/command"

func main() {
	command.Execute()
}
