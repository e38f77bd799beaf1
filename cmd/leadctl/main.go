package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/cli"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/config"
)

func main() {
	_ = godotenv.Load()

	if err := cli.NewRootCmd(config.Load(), cli.OpenDatabase).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
