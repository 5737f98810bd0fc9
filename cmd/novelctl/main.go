package main

import "novelhub/cmd/novelctl/command"

func main() {
	command.Execute()
}
