package main

import "vplanctl/cmd"

func main() {
	cmd.Execute()
}
