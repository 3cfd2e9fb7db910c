package main

import (
	"github.com/anchore/bomcodec/cmd"
)

func main() {
	cmd.Execute()
}
