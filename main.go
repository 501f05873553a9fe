package main

import coffeehead "github.com/coffeehead/coffeehead-cli/cmd/coffeehead"

func main() {
	coffeehead.Execute()
}
