package main

import (
	"fmt"
	"os"

	"fact-tracker/internal/cli"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine; explicit environment variables still apply.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
