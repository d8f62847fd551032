package main

import "wikiicp/cmd"

func main() {
	cmd.Execute()
}
