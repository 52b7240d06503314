package main

import (
	"github.com/phptune/phptune/src/cmd"
)

func main() {
	cmd.Execute()
}
