package main

import (
	"os"

	"github.com/gzhole/web3threat/internal/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.ExecuteThreatModel()))
}
