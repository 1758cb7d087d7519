package main

import "github.com/isaac-server/isaac/cmd/isaac-server/cmd"

func main() {
	cmd.Execute()
}
