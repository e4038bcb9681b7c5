package main

import "github.com/mj1618/desktop-dnd/cmd"

func main() {
	cmd.Execute()
}
