package main

import (
	"github.com/relloyd/snowload/cmd"
)

func main() {
	cmd.Execute()
}
