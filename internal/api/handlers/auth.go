package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/mibcs/clubsite/internal/api/middleware"
	"github.com/mibcs/clubsite/internal/api/problem"
	"github.com/mibcs/clubsite/internal/domain/users"
)

type AuthHandler struct {
	Users *users.Service
	Env   string
}

func NewAuthHandler(service *users.Service, env string) *AuthHandler {
	return &AuthHandler{Users: service, Env: env}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      userPayload `json:"user"`
}

type userPayload struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func userToPayload(user *users.User) userPayload {
	return userPayload{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Role:        string(user.Role),
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

// Login exchanges credentials for a bearer token. Unknown email, wrong
// password, and disabled account all answer the same 401 so probes learn
// nothing about which part failed.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env,
			problem.WithDetail("malformed JSON body"))
		return
	}

	result, err := h.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) || errors.Is(err, users.ErrInactive) {
			problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", err, h.Env,
				problem.WithDetail("invalid email or password"))
			return
		}
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      userToPayload(result.User),
	})
}

// Me returns the account behind the presented token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", problem.ErrUnauthorized, h.Env)
		return
	}

	user, err := h.Users.Get(r.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", err, h.Env,
				problem.WithDetail("account no longer exists"))
			return
		}
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	writeJSON(w, http.StatusOK, userToPayload(user))
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", problem.ErrUnauthorized, h.Env)
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env,
			problem.WithDetail("malformed JSON body"))
		return
	}

	err := h.Users.ChangePassword(r.Context(), claims.Subject, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrWeakPassword):
			problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env,
				problem.WithErrors(map[string]interface{}{"newPassword": err.Error()}))
		case errors.Is(err, users.ErrInvalidCredentials):
			problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", err, h.Env,
				problem.WithDetail("current password is incorrect"))
		case errors.Is(err, users.ErrNotFound):
			problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", err, h.Env)
		default:
			problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}
