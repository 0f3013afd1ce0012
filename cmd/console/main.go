package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"stockledger/internal/cli"
)

func main() {
	// A missing .env is fine; the environment may already carry the settings.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
