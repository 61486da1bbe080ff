// HealthBite assistant: terminal host for the HealthBite client.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	root, a := newRootCmd(rootOptions{})
	if err := execute(context.Background(), root, a); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
