package main

import "loot-ledger/cmd"

func main() {
	cmd.Execute()
}
