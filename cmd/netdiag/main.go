// File: cmd/netdiag/main.go (complete file)

package main

import (
	"os"

	"github.com/baptistax/netdiag/internal/cli"
)

func main() {
	code := cli.Run(os.Args[1:])
	os.Exit(code)
}
