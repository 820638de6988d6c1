package main

import (
	"rockbottom/internal/cli"
)

func main() {
	cli.Execute()
}
