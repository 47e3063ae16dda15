package main

import "github.com/pfrederiksen/fifa-dash/internal/cli"

func main() {
	cli.Execute()
}
