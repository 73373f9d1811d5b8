package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/spigell/talent-match/cmd"
)

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
