package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/illinoisestatelaw/casedesk-core/internal/audit"
)

// usersResponse is the response body for GET /admin/users.
type usersResponse struct {
	Users []userView `json:"users"`
	Total int        `json:"total"`
}

// userView is the sanitized account representation for listings. It mirrors
// auth.User's JSON shape; the hash is excluded at the type level there and
// never reaches this struct at all.
type userView struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// handleListUsers returns every account, newest first. Admin only.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		s.logger.Error("user list failed", "error", err)
		writeInternalError(w, "internal server error")
		return
	}

	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, userView{
			ID:        u.ID,
			Email:     u.Email,
			Name:      u.Name,
			Role:      string(u.Role),
			IsActive:  u.IsActive,
			CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
			UpdatedAt: u.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, usersResponse{Users: views, Total: len(views)})
}

// handleListAudit returns the activity trail, newest first. Admin only.
//
// Query parameters: action, user_id, limit (max 200), offset.
func (s *Server) handleListAudit(w http.ResponseWriter, r *http.Request) {
	if s.audit == nil {
		writeNotFound(w, "not found")
		return
	}

	filter := audit.Filter{
		Action: r.URL.Query().Get("action"),
		UserID: r.URL.Query().Get("user_id"),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeBadRequest(w, "limit must be a non-negative integer")
			return
		}
		filter.Limit = n
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeBadRequest(w, "offset must be a non-negative integer")
			return
		}
		filter.Offset = n
	}

	result, err := s.audit.List(r.Context(), filter)
	if err != nil {
		s.logger.Error("audit list failed", "error", err)
		writeInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
