package main

import "github.com/andrescamacho/mercado-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
