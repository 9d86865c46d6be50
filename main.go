package main

import "tracking-auditor/cmd"

func main() {
	cmd.Execute()
}
