package main

import "github.com/hackerhouse/hhboard/cmd"

func main() {
	cmd.Execute()
}
