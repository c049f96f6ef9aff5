package main

import "github.com/spanwatch/spanwatch/internal/cli"

func main() {
	cli.Execute()
}
