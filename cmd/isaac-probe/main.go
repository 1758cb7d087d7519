package main

import "github.com/isaac-server/isaac/cmd/isaac-probe/cmd"

func main() {
	cmd.Execute()
}
