package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/spigell/job-scout/cmd"
)

func main() {
	// Missing .env is fine, credentials may come from the environment.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
