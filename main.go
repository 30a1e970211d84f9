package main

import "github.com/Tiliavir/workhours/cmd"

func main() {
	cmd.Execute()
}
