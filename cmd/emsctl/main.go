package main

import (
	"os"

	"github.com/joho/godotenv"

	"employee_directory/cmd/emsctl/cmd"
)

func main() {
	_ = godotenv.Load(".env")
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
