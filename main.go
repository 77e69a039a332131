package main

import "github.com/moyu-x/minecraft-timer/cmd"

func main() {
	cmd.Execute()
}
