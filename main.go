package main

import "github.com/papapumpkin/phase0/cmd"

func main() {
	cmd.Execute()
}
