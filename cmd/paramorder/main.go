package main

import (
	"fmt"
	"os"

	"github.com/justyntemme/paramorder/examples/paramorder"
	"github.com/justyntemme/paramorder/internal/cli"
	"github.com/justyntemme/paramorder/pkg/framework/debug"
)

func main() {
	err := cli.RootCommand(paramorder.New()).Execute()
	_ = debug.Logger().Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
