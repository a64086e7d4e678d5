package main

import "quote-manager/cmd"

func main() {
	cmd.Execute()
}
