package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// ErrBadCredentials is returned on any username/password mismatch.
// One error for both cases, so responses don't leak which part was
// wrong.
var ErrBadCredentials = errors.New("invalid username or password")

// Credentials verifies admin logins against a bcrypt hash. The hash
// comes either from the environment or from a JSON credentials file.
type Credentials struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
}

// LoadCredentials builds the credential set. When file is non-empty
// it wins over the env-provided pair.
func LoadCredentials(file, envUser, envHash string) (*Credentials, error) {
	if file != "" {
		raw, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		var c Credentials
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("parse credentials file: %w", err)
		}
		if c.Username == "" || c.PasswordHash == "" {
			return nil, errors.New("credentials file must set username and password_hash")
		}
		return &c, nil
	}
	if envHash == "" {
		return nil, errors.New("no admin credentials configured")
	}
	return &Credentials{Username: envUser, PasswordHash: envHash}, nil
}

// Verify checks a username/password pair.
func (c *Credentials) Verify(username, password string) error {
	if username != c.Username {
		return ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return ErrBadCredentials
	}
	return nil
}

// HashPassword produces a bcrypt hash suitable for the credentials
// file or ROSTERD_ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
