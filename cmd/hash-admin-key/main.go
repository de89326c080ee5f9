package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/nthumods/mods-backend/internal/config"
	"github.com/nthumods/mods-backend/internal/logger"
	"github.com/nthumods/mods-backend/internal/service"
	"golang.org/x/term"
)

const minKeyLength = 16

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	authService := service.NewAuthService(cfg)

	// ─── CLI Input ─────────────────────────────────────────────────────
	fmt.Fprintln(os.Stderr, "=== Hash Admin Key ===")

	key, err := readSecret("Enter admin key: ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read admin key")
	}
	if len(key) < minKeyLength {
		fmt.Fprintf(os.Stderr, "Error: admin key must be at least %d characters\n", minKeyLength)
		os.Exit(1)
	}

	confirm, err := readSecret("Confirm admin key: ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read admin key")
	}
	if confirm != key {
		fmt.Fprintln(os.Stderr, "Error: keys do not match")
		os.Exit(1)
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	hash, err := authService.HashAdminKey(key)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash admin key")
	}

	fmt.Fprintln(os.Stderr, "\nAdd this line to the server environment:")
	fmt.Printf("ADMIN_KEY_HASH=%s\n", hash)
}

func readSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
