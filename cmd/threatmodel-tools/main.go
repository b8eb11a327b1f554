package main

import (
	"context"
	"os"

	"github.com/gzhole/web3threat/internal/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.ExecuteTools(context.Background())))
}
