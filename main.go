package main

import "github.com/notargets/jetsolver/cmd"

func main() {
	cmd.Execute()
}
