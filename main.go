package main

import "simsiac/internal/cli"

func main() {
	cli.Execute()
}
