package main

import "github.com/oceanmesh/gomesh/cmd"

func main() {
	cmd.Execute()
}
