// Package auth provides authentication and authorisation for Casedesk Core.
//
// It implements a 2-tier role model (staff → admin) with:
//   - Dual-scheme password hashing: PBKDF2-SHA256 for all new hashes,
//     with verification delegation for legacy bcrypt hashes
//   - Stateless HS256 bearer tokens (7-day expiry, no server-side session)
//   - SQLite-backed user repository with a UNIQUE email constraint
//   - First-boot admin seeding with a fixed temporary password
//
// Accounts are restricted to the firm's email domain. Registration always
// produces a staff account; admin is only granted by seeding or by another
// admin editing the record directly. Deactivation is a field flip
// (is_active = 0), never a delete — inactive users are rejected at login
// and on any route that re-fetches the user record.
//
// All cryptographic and decoding failures are converted to boolean/error
// results at this package's boundary; nothing here panics on malformed,
// forged, or expired input.
package auth
