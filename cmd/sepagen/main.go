package main

import "github.com/coloctools/sepacollect/internal/cli"

func main() {
	cli.Execute()
}
