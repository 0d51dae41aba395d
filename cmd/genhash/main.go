// Command genhash prints a bcrypt hash for ADMIN_PASSWORD_HASH.
//
//	go run ./cmd/genhash 'S3cret-password'
//	ADMIN_PASSWORD='S3cret-password' go run ./cmd/genhash -cost 12
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

var errNoPassword = errors.New("password required: pass it as an argument or set ADMIN_PASSWORD")

func generatePasswordHash(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func resolvePassword(args []string, getenv func(string) string) (string, error) {
	password := getenv("ADMIN_PASSWORD")
	if len(args) > 0 {
		password = args[0]
	}
	if password == "" {
		return "", errNoPassword
	}
	if len(password) < minPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	return password, nil
}

func run(args []string, getenv func(string) string, out io.Writer) error {
	fs := flag.NewFlagSet("genhash", flag.ContinueOnError)
	cost := fs.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	if err := fs.Parse(args); err != nil {
		return err
	}

	password, err := resolvePassword(fs.Args(), getenv)
	if err != nil {
		return err
	}

	hash, err := generatePasswordHash(password, *cost)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, hash)
	return err
}

func main() {
	if err := run(os.Args[1:], os.Getenv, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
