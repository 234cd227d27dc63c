package main

import "github.com/OpenTraceLab/trace/cmd/trace/cmd"

func main() {
	cmd.Execute()
}
