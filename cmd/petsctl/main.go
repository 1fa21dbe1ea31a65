package main

import "pet-tracker/internal/cli"

func main() {
	cli.Execute()
}
