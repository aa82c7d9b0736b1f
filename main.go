package main

import (
	"github.com/markpad/markpad/cmd"
)

func main() {
	cmd.Execute()
}
