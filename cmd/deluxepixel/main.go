package main

import "github.com/ha1tch/deluxepixel/cmd/deluxepixel/cmd"

func main() {
	cmd.Execute()
}
