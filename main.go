package main

import "github.com/redlinehq/redline/cmd"

func main() {
	cmd.Execute()
}
