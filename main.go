package main

import "indy-builder/cmd"

func main() {
	cmd.Execute()
}
