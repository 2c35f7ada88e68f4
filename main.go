package main

import "item-sync/cmd"

func main() {
	cmd.Execute()
}
