package main

import "github.com/nexa-assets/nexa/internal/cli"

func main() {
	cli.Execute()
}
