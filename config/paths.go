package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvDir overrides the OpenClaw config directory when set
const EnvDir = "OPENCLAW_DIR"

const (
	mainConfigName = "openclaw.json"
	authStoreDir   = "credentials"
	authStoreName  = "auth-profiles.json"
)

// Dir returns the OpenClaw config directory, honoring OPENCLAW_DIR
func Dir() (string, error) {
	if dir := os.Getenv(EnvDir); dir != "" {
		return dir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".openclaw"), nil
}

// MainConfigPath returns the path of OpenClaw's primary config document
func MainConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, mainConfigName), nil
}

// AuthStorePath returns the path of OpenClaw's auth-profile store
func AuthStorePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, authStoreDir, authStoreName), nil
}
