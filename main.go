package main

import "frontdesk-go/cli"

func main() {
	cli.Execute()
}
