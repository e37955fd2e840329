package main

import "github.com/claimdeck/claimdeck/cmd"

func main() {
	cmd.Execute()
}
