package main

import (
	"os"

	"github.com/crazypanel/lookupbot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
