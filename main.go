package main

import "github.com/user/a11y-audit/cmd"

func main() {
	cmd.Execute()
}
