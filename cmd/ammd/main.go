package main

import (
	"os"

	"github.com/paw-chain/cpamm/app"
	"github.com/paw-chain/cpamm/cmd/ammd/cmd"
)

func main() {
	app.SetConfig()

	rootCmd := cmd.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
