package main

import "github.com/shortsforge/shortsforge/internal/cli"

func main() {
	cli.Main()
}
