package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
)

const (
	defaultKeyBytes = 32
	minKeyBytes     = 16

	signingKeyEnv = "AUTH_SIGNING_KEY"
)

// Prints random key for auth-api access token signing
func main() {
	if err := run(os.Args[1:], rand.Reader, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error while generating secret key: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, random io.Reader, out io.Writer) error {
	fs := pflag.NewFlagSet("gensecret", pflag.ContinueOnError)
	size := fs.IntP("bytes", "n", defaultKeyBytes, "Key length in bytes")
	asEnv := fs.Bool("env", false, "Print as "+signingKeyEnv+"=<key> line for .env file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *size < minKeyBytes {
		return fmt.Errorf("key must be at least %d bytes, got %d", minKeyBytes, *size)
	}

	b := make([]byte, *size)
	if _, err := io.ReadFull(random, b); err != nil {
		return err
	}

	key := hex.EncodeToString(b)
	if *asEnv {
		key = signingKeyEnv + "=" + key
	}

	_, err := fmt.Fprintln(out, key)
	return err
}
