package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long a minted bearer token remains valid. There is no
// revocation list: invalidation is purely by expiry, so a compromised token
// stays valid for up to this long regardless of password changes.
const TokenTTL = 7 * 24 * time.Hour

// Claims are the identity fields embedded in a bearer token payload.
// They are signed, not encrypted — nothing sensitive beyond identity and
// role may be added here.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// MintToken creates a signed HS256 bearer token for a user with the
// standard 7-day expiry.
func MintToken(user *User, secret string) (string, error) {
	return MintTokenWithTTL(user, secret, TokenTTL)
}

// MintTokenWithTTL creates a signed HS256 bearer token with an explicit
// lifetime. A non-positive ttl produces an already-expired token, which is
// useful for exercising the expiry path in tests.
func MintTokenWithTTL(user *User, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: user.Email,
		Role:  user.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// ParseToken validates and parses a bearer token, returning the claims.
//
// The signature is checked before the payload is trusted; expiry, segment
// count, base64url and JSON decoding failures all surface as ErrTokenInvalid
// rather than panicking or leaking which check failed.
func ParseToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrTokenInvalid)
	}

	if claims.Role == "" {
		return nil, fmt.Errorf("%w: missing role", ErrTokenInvalid)
	}

	return claims, nil
}
