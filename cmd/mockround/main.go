// Command mockround runs timed practice interviews in the terminal and
// serves the question API they talk to.
package main

import (
	"github.com/joho/godotenv"

	"github.com/mockround/mockround/internal/cli"
)

func main() {
	// A missing .env is normal; values already in the environment win.
	_ = godotenv.Load()
	cli.Execute()
}
