package main

import (
	"github.com/framelab/cadence/cmd/cadence/cmd"
)

func main() {
	cmd.Execute()
}
