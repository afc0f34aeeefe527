package main

import "github.com/lukman83/naverscrap/cmd"

func main() {
	cmd.Execute()
}
