package main

import "github.com/gaurav-prasanna/blogbook/cmd"

func main() {
	cmd.Execute()
}
