package main

import "github.com/agentlab/ideaforge/cmd"

func main() {
	cmd.Execute()
}
