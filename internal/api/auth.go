package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/illinoisestatelaw/casedesk-core/internal/audit"
	"github.com/illinoisestatelaw/casedesk-core/internal/auth"
)

// loginFailedDetail is the single message returned for every login failure.
// Absent users, deactivated users, and wrong passwords must be
// indistinguishable from the outside.
const loginFailedDetail = "invalid email or password"

// registerRequest is the request body for POST /auth/register.
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// loginRequest is the request body for POST /auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResponse is the response body for routes that mint a token.
type tokenResponse struct {
	Token string     `json:"token"`
	User  *auth.User `json:"user"`
}

// handleRegister creates a new staff account and returns a signed token.
//
// Registration is restricted to firm email addresses. The role is always
// staff; promotion to admin happens out of band.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	email := auth.NormalizeEmail(req.Email)
	if !auth.IsAllowedEmail(email) {
		writeBadRequest(w, "email must end with "+auth.AllowedEmailDomain)
		return
	}
	if len(req.Password) < auth.MinPasswordLength {
		writeBadRequest(w, "password must be at least 8 characters")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeBadRequest(w, "name is required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("password hashing failed", "error", err)
		writeInternalError(w, "internal server error")
		return
	}

	user := &auth.User{
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
		Role:         auth.RoleStaff,
		IsActive:     true,
	}

	if err := s.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, auth.ErrEmailExists) {
			writeBadRequest(w, "email already registered")
			return
		}
		s.logger.Error("user insert failed", "error", err, "email", email)
		writeInternalError(w, "internal server error")
		return
	}

	token, err := auth.MintToken(user, s.secCfg.JWT.Secret)
	if err != nil {
		s.logger.Error("token mint failed", "error", err, "user_id", user.ID)
		writeInternalError(w, "internal server error")
		return
	}

	s.recordAudit(r.Context(), &audit.Entry{
		Action: audit.ActionRegister,
		UserID: user.ID,
		Email:  user.Email,
	})

	writeJSON(w, http.StatusCreated, tokenResponse{Token: token, User: user})
}

// handleLogin verifies credentials and returns a signed token.
//
// All failure paths return the same 401 body. A failed attempt is recorded
// in the activity trail with the submitted email so repeated probing is
// visible to admins.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	email := auth.NormalizeEmail(req.Email)

	user, err := s.users.GetByEmail(r.Context(), email)
	if err != nil {
		if !errors.Is(err, auth.ErrUserNotFound) {
			s.logger.Error("user lookup failed", "error", err, "email", email)
			writeInternalError(w, "internal server error")
			return
		}
		user = nil
	}

	if user == nil || !user.IsActive || !auth.VerifyPassword(req.Password, user.PasswordHash) {
		s.recordAudit(r.Context(), &audit.Entry{
			Action: audit.ActionLoginFailed,
			Email:  email,
		})
		writeUnauthorized(w, loginFailedDetail)
		return
	}

	token, err := auth.MintToken(user, s.secCfg.JWT.Secret)
	if err != nil {
		s.logger.Error("token mint failed", "error", err, "user_id", user.ID)
		writeInternalError(w, "internal server error")
		return
	}

	s.recordAudit(r.Context(), &audit.Entry{
		Action: audit.ActionLogin,
		UserID: user.ID,
		Email:  user.Email,
	})

	writeJSON(w, http.StatusOK, tokenResponse{Token: token, User: user})
}

// handleMe returns the authenticated user's account.
//
// The account is re-fetched so deactivation takes effect immediately even
// though the token itself stays verifiable until expiry.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// handleCheckRole returns the authenticated user's role and admin flag.
func (s *Server) handleCheckRole(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"role":     user.Role,
		"is_admin": user.IsAdmin(),
	})
}

// profileRequest is the request body for PATCH /auth/profile.
// Name is the only mutable field; email and role are fixed after creation.
type profileRequest struct {
	Name string `json:"name"`
}

// handleUpdateProfile updates the authenticated user's mutable fields.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeBadRequest(w, "name is required")
		return
	}

	user.Name = name
	if err := s.users.Update(r.Context(), user); err != nil {
		s.logger.Error("profile update failed", "error", err, "user_id", user.ID)
		writeInternalError(w, "internal server error")
		return
	}

	s.recordAudit(r.Context(), &audit.Entry{
		Action: audit.ActionProfileUpdate,
		UserID: user.ID,
		Email:  user.Email,
	})

	writeJSON(w, http.StatusOK, user)
}

// changePasswordRequest is the request body for POST /auth/change-password.
type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// handleChangePassword re-hashes the authenticated user's password.
//
// The current password must verify first; a wrong current password leaves
// the stored hash untouched. The replacement hash always uses the current
// scheme, so this is also the upgrade path off legacy hashes.
func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if !auth.VerifyPassword(req.CurrentPassword, user.PasswordHash) {
		writeBadRequest(w, "current password is incorrect")
		return
	}
	if len(req.NewPassword) < auth.MinPasswordLength {
		writeBadRequest(w, "password must be at least 8 characters")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		s.logger.Error("password hashing failed", "error", err)
		writeInternalError(w, "internal server error")
		return
	}

	if err := s.users.UpdatePassword(r.Context(), user.ID, hash); err != nil {
		s.logger.Error("password update failed", "error", err, "user_id", user.ID)
		writeInternalError(w, "internal server error")
		return
	}

	s.recordAudit(r.Context(), &audit.Entry{
		Action: audit.ActionPasswordChange,
		UserID: user.ID,
		Email:  user.Email,
	})

	writeJSON(w, http.StatusOK, user)
}

// handleSeedAdmin creates the initial admin account.
//
// Only works on an empty store; once any account exists the route refuses
// with a 400 and inserts nothing. The temporary password is a published
// constant and must be changed on first login.
func (s *Server) handleSeedAdmin(w http.ResponseWriter, r *http.Request) {
	user, err := auth.SeedAdmin(r.Context(), s.users, s.logger.Logger)
	if err != nil {
		if errors.Is(err, auth.ErrUsersExist) {
			writeBadRequest(w, "users already exist")
			return
		}
		s.logger.Error("admin seed failed", "error", err)
		writeInternalError(w, "internal server error")
		return
	}

	s.recordAudit(r.Context(), &audit.Entry{
		Action: audit.ActionSeedAdmin,
		UserID: user.ID,
		Email:  user.Email,
	})

	writeJSON(w, http.StatusCreated, map[string]any{
		"user":               user,
		"temporary_password": auth.SeedAdminPassword,
	})
}

// currentUser resolves the token claims on the request to a live, active
// account. On failure it writes the 401 response itself and returns false.
func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) (*auth.User, bool) {
	claims := claimsFromContext(r.Context())
	if claims == nil {
		writeUnauthorized(w, "missing bearer token")
		return nil, false
	}

	user, err := s.users.GetByID(r.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeUnauthorized(w, "user account not found or inactive")
			return nil, false
		}
		s.logger.Error("user lookup failed", "error", err, "user_id", claims.Subject)
		writeInternalError(w, "internal server error")
		return nil, false
	}
	if !user.IsActive {
		writeUnauthorized(w, "user account not found or inactive")
		return nil, false
	}

	return user, true
}

// recordAudit writes an activity trail entry. Failures are logged and
// swallowed; the trail must never break the request that triggered it.
func (s *Server) recordAudit(ctx context.Context, entry *audit.Entry) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Create(ctx, entry); err != nil {
		s.logger.Warn("audit write failed", "error", err, "action", entry.Action)
	}
}
