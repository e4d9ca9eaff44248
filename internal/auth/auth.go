// Package auth keeps the bearer token sent to the todos service.
package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	credFileName = "credentials.json"
	// EnvToken overrides any stored token.
	EnvToken = "TADA_TOKEN"
)

type TokenInfo struct {
	Token     string     `json:"token"`
	Source    string     `json:"source"`     // "env" | "file"
	CreatedAt time.Time  `json:"created_at"` // when we saved to file
	ExpiresAt *time.Time `json:"expires_at"` // optional
}

// Keyring reads and writes credentials under Dir (normally ~/.tada).
type Keyring struct {
	Dir string
}

func (k Keyring) path() string { return filepath.Join(k.Dir, credFileName) }

// Token returns the active token, or nil when not logged in.
func (k Keyring) Token() (*TokenInfo, error) {
	if env := strings.TrimSpace(os.Getenv(EnvToken)); env != "" {
		return &TokenInfo{Token: stripBearer(env), Source: "env"}, nil
	}

	b, err := os.ReadFile(k.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var ti TokenInfo
	if err := json.Unmarshal(b, &ti); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	ti.Token = stripBearer(ti.Token)
	return &ti, nil
}

// Save writes token owner-only; the directory is created 0700.
func (k Keyring) Save(token string, expires *time.Time) error {
	token = stripBearer(strings.TrimSpace(token))
	if token == "" {
		return fmt.Errorf("empty token")
	}
	if err := os.MkdirAll(k.Dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := json.MarshalIndent(TokenInfo{
		Token:     token,
		Source:    "file",
		CreatedAt: time.Now(),
		ExpiresAt: expires,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.WriteFile(k.path(), b, 0o600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Delete removes the stored token. Deleting a missing file is not an error.
func (k Keyring) Delete() error {
	if err := os.Remove(k.path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

// Bearer returns the token string to send, or "" when not logged in.
func (k Keyring) Bearer() string {
	ti, err := k.Token()
	if err != nil || ti == nil {
		return ""
	}
	return ti.Token
}

// JWTPayload decodes the unsigned payload of a JWT. Opaque tokens return ok=false.
func JWTPayload(token string) (string, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", false
	}
	payload := strings.TrimRight(parts[1], "=")
	dec, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return "", false
	}
	return string(dec), true
}

func stripBearer(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}
