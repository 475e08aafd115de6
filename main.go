package main

import "github.com/lookbusy1344/rv32sim/cmd"

func main() {
	cmd.Execute()
}
