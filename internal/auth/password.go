package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2-SHA256 parameters for the current hashing scheme.
const (
	pbkdf2Iterations = 310000 // OWASP 2023 floor for PBKDF2-HMAC-SHA256
	pbkdf2KeyLen     = 32     // output hash length
	pbkdf2SaltLen    = 16     // salt length

	// pbkdf2Scheme is the scheme discriminator for current-format hashes.
	// Stored format: pbkdf2_sha256$<iterations>$<salt hex>$<digest hex>
	pbkdf2Scheme = "pbkdf2_sha256"

	// pbkdf2HashParts is the number of $-delimited parts in a stored hash.
	pbkdf2HashParts = 4
)

// bcryptPrefixes identify legacy-scheme hashes. Accounts created before the
// PBKDF2 cutover carry bcrypt hashes and keep verifying through the bcrypt
// branch; they are only re-hashed when the password is changed.
var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// HashPassword hashes a plaintext password using PBKDF2-SHA256 with a fresh
// random salt. The iteration count is embedded per-hash, so raising it
// later never invalidates previously stored hashes.
func HashPassword(password string) (string, error) {
	salt := make([]byte, pbkdf2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	digest := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, pbkdf2KeyLen, sha256.New)

	return fmt.Sprintf("%s$%d$%s$%s",
		pbkdf2Scheme,
		pbkdf2Iterations,
		hex.EncodeToString(salt),
		hex.EncodeToString(digest),
	), nil
}

// VerifyPassword checks a plaintext password against a stored hash.
//
// The scheme discriminator in the stored string selects the verifier:
// current-format hashes are re-derived and compared in constant time,
// legacy bcrypt hashes are delegated to the bcrypt implementation, and
// anything unrecognised fails closed. The caller cannot distinguish a
// malformed hash from a wrong password.
func VerifyPassword(password, stored string) bool {
	if strings.HasPrefix(stored, pbkdf2Scheme+"$") {
		return verifyPBKDF2(password, stored)
	}

	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(stored, prefix) {
			return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
		}
	}

	return false
}

// verifyPBKDF2 re-derives a candidate digest using the salt and iteration
// count embedded in the stored hash and compares in constant time.
func verifyPBKDF2(password, stored string) bool {
	parts := strings.Split(stored, "$")
	if len(parts) != pbkdf2HashParts {
		return false
	}

	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations <= 0 {
		return false
	}

	salt, err := hex.DecodeString(parts[2])
	if err != nil {
		return false
	}

	digest, err := hex.DecodeString(parts[3])
	if err != nil || len(digest) == 0 {
		return false
	}

	candidate := pbkdf2.Key([]byte(password), salt, iterations, len(digest), sha256.New)

	return subtle.ConstantTimeCompare(digest, candidate) == 1
}
