package main

import "github.com/pageza/recipebook/backend/internal/cli"

func main() {
	cli.Execute()
}
