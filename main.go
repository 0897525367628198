package main

import "github.com/ledgermate/ledgermate/cmd"

func main() {
	cmd.Execute()
}
