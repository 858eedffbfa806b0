// Command noteboardctl bundles the operator chores: password hashes,
// dev access tokens and schema migrations.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := loadEnv(".env"); err != nil {
		return err
	}
	return newRootCmd().Execute()
}

// loadEnv reads path into the environment. A missing file is fine; a
// malformed one is not.
func loadEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
