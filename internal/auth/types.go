package auth

import (
	"errors"
	"strings"
	"time"
)

// AllowedEmailDomain is the organisational email domain suffix required for
// every account. It is deliberately a compile-time constant, not
// configuration: the firm owns exactly one domain and a misconfigured
// deployment must not be able to widen registration.
const AllowedEmailDomain = "@illinoisestatelaw.com"

// MinPasswordLength is the minimum accepted password length for
// registration and password changes.
const MinPasswordLength = 8

// NormalizeEmail lower-cases and trims an email address. Two addresses that
// normalise to the same string are the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsAllowedEmail reports whether a (normalised) email belongs to the firm's
// domain.
func IsAllowedEmail(email string) bool {
	return strings.HasSuffix(NormalizeEmail(email), AllowedEmailDomain)
}

// Role represents an authorisation tier in the system.
type Role string

const (
	// RoleStaff is a regular firm member. Default for every registration;
	// never selectable by the registrant.
	RoleStaff Role = "staff"

	// RoleAdmin can list all accounts and manage the system. Granted only
	// by seeding or by an existing admin.
	RoleAdmin Role = "admin"
)

// ValidRoles is the set of valid account roles.
var ValidRoles = []Role{RoleStaff, RoleAdmin}

// IsValidRole returns true if the role is a valid account role.
func IsValidRole(r Role) bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

// User represents a firm member account.
//
// PasswordHash carries its own scheme discriminator (see password.go) and
// is never serialised in any response.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // never serialised
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Sentinel errors for auth operations.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrEmailExists        = errors.New("email already registered")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrUsersExist         = errors.New("users already exist")
)
