package main

import "github.com/liamg/portcheck/cmd"

func main() {
	cmd.Execute()
}
