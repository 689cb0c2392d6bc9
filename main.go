package main

import "github.com/Tiliavir/gh-wizard/cmd"

func main() {
	cmd.Execute()
}
