package main

import "github.com/lawnlab/lawnscript/lawnscript/cmd"

func main() {
	cmd.Execute()
}
