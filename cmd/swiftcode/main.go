package main

import "github.com/UzayAnil/swiftcode/internal/cli"

func main() {
	cli.Execute()
}
