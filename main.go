package main

import "github.com/ouroboros-foundation/portal/cmd"

func main() {
	cmd.Execute()
}
