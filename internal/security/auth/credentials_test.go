package auth

import (
	"os"
	"path/filepath"
	"testing"
)

func TestVerifyEnvCredentials(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	creds, err := LoadCredentials("", "admin", hash)
	if err != nil {
		t.Fatalf("LoadCredentials: %v", err)
	}
	if err := creds.Verify("admin", "s3cret"); err != nil {
		t.Fatalf("expected valid login, got %v", err)
	}
	if err := creds.Verify("admin", "wrong"); err == nil {
		t.Fatal("expected bad password to fail")
	}
	if err := creds.Verify("root", "s3cret"); err == nil {
		t.Fatal("expected unknown user to fail")
	}
}

func TestLoadCredentialsFromFile(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	path := filepath.Join(t.TempDir(), "creds.json")
	if err := os.WriteFile(path, []byte(`{"username":"scheduler","password_hash":"`+hash+`"}`), 0o600); err != nil {
		t.Fatalf("write creds: %v", err)
	}

	creds, err := LoadCredentials(path, "ignored", "ignored")
	if err != nil {
		t.Fatalf("LoadCredentials: %v", err)
	}
	if creds.Username != "scheduler" {
		t.Fatalf("unexpected username: %s", creds.Username)
	}
	if err := creds.Verify("scheduler", "hunter2"); err != nil {
		t.Fatalf("expected valid login, got %v", err)
	}
}

func TestLoadCredentialsMissing(t *testing.T) {
	if _, err := LoadCredentials("", "admin", ""); err == nil {
		t.Fatal("expected error when no credentials configured")
	}
}
