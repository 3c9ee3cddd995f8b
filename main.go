package main

import "github.com/Altair29/J-GLOW-sub002/cmd"

func main() {
	cmd.Execute()
}
