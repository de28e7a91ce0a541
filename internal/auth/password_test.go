package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	password := "correct-horse-battery-staple"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	// Verify the hash carries the current scheme discriminator
	if !strings.HasPrefix(hash, "pbkdf2_sha256$") {
		t.Errorf("hash should start with pbkdf2_sha256$, got %q", hash)
	}

	// Correct password should verify
	if !VerifyPassword(password, hash) {
		t.Error("VerifyPassword() should return true for correct password")
	}
}

func TestHashPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("correct-password")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if VerifyPassword("wrong-password", hash) {
		t.Error("VerifyPassword() should return false for wrong password")
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	password := "same-password"

	hash1, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	hash2, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if hash1 == hash2 {
		t.Error("two hashes of the same password should have different salts")
	}

	// Both still verify against the original password
	if !VerifyPassword(password, hash1) || !VerifyPassword(password, hash2) {
		t.Error("both hashes should verify against the original password")
	}
}

func TestHashPassword_StoredFormat(t *testing.T) {
	hash, err := HashPassword("test")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	parts := strings.Split(hash, "$")
	if len(parts) != 4 {
		t.Fatalf("stored format should have 4 $-delimited parts, got %d: %q", len(parts), hash)
	}

	if parts[0] != "pbkdf2_sha256" {
		t.Errorf("scheme should be pbkdf2_sha256, got %q", parts[0])
	}

	if parts[1] != "310000" {
		t.Errorf("iteration count should be 310000, got %q", parts[1])
	}

	// 16-byte salt and 32-byte digest, hex encoded
	if len(parts[2]) != 32 {
		t.Errorf("salt should be 32 hex chars, got %d", len(parts[2]))
	}
	if len(parts[3]) != 64 {
		t.Errorf("digest should be 64 hex chars, got %d", len(parts[3]))
	}
}

func TestVerifyPassword_LegacyBcrypt(t *testing.T) {
	// An account created before the PBKDF2 cutover stores a bcrypt hash.
	legacy, err := bcrypt.GenerateFromPassword([]byte("old-account-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt.GenerateFromPassword() error = %v", err)
	}

	if !VerifyPassword("old-account-password", string(legacy)) {
		t.Error("legacy bcrypt hash should verify through the bcrypt branch")
	}

	if VerifyPassword("not-the-password", string(legacy)) {
		t.Error("legacy bcrypt hash should reject a wrong password")
	}
}

func TestVerifyPassword_UnrecognisedScheme(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"plaintext", "hunter2"},
		{"unknown scheme", "scrypt$16384$aabb$ccdd"},
		{"argon2 PHC", "$argon2id$v=19$m=65536,t=3,p=1$c2FsdA$aGFzaA"},
		{"too few parts", "pbkdf2_sha256$310000$deadbeef"},
		{"bad iteration count", "pbkdf2_sha256$abc$deadbeef$deadbeef"},
		{"zero iterations", "pbkdf2_sha256$0$deadbeef$deadbeef"},
		{"bad salt hex", "pbkdf2_sha256$310000$zzzz$deadbeef"},
		{"bad digest hex", "pbkdf2_sha256$310000$deadbeef$zzzz"},
		{"empty digest", "pbkdf2_sha256$310000$deadbeef$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if VerifyPassword("password", tt.hash) {
				t.Error("VerifyPassword() should fail closed for unrecognised or malformed hashes")
			}
		})
	}
}

func TestVerifyPassword_TamperedIterationCount(t *testing.T) {
	// The iteration count is read from the stored string, so altering it
	// changes the derived digest and verification must fail.
	hash, err := HashPassword("password")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	parts := strings.Split(hash, "$")
	tampered := parts[0] + "$1000$" + parts[2] + "$" + parts[3]
	if VerifyPassword("password", tampered) {
		t.Error("changing the embedded iteration count should invalidate the digest")
	}
}
