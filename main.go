package main

import "github.com/pmb-ti/accountrenewal/cli"

var version = "dev"

func main() {
	cli.Execute(version)
}
