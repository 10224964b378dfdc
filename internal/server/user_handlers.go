package server

import (
	"net/http"
	"strings"

	"eliterentals/internal/app"
	"eliterentals/pkg/auth"
	"eliterentals/pkg/domain"
)

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req signUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := s.app.SignUp(app.SignUpInput{
		FirstName:              req.FirstName,
		LastName:               req.LastName,
		Email:                  req.Email,
		Password:               req.Password,
		Role:                   domain.UserRole(req.Role),
		LanguagePreference:     req.LanguagePreference,
		NotificationPreference: req.NotificationPreference,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}
	token, err := s.tokens.Issue(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := s.app.Login(req.Email, req.Password)
	if err != nil {
		writeAppError(w, err)
		return
	}
	token, err := s.tokens.Issue(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request, _ auth.Claims) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	users, err := s.app.ListUsers()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": users, "count": len(users)})
}

// /api/users/{id} or /api/users/{id}/fcm-token
func (s *Server) handleUserByID(w http.ResponseWriter, r *http.Request, claims auth.Claims) {
	path := strings.TrimPrefix(r.URL.Path, "/api/users/")
	parts := strings.SplitN(path, "/", 2)
	id := parts[0]
	if id == "" {
		notFound(w, "not found")
		return
	}
	if len(parts) == 2 {
		if parts[1] != "fcm-token" {
			notFound(w, "not found")
			return
		}
		s.handleSetFCMToken(w, r, claims, id)
		return
	}
	switch r.Method {
	case http.MethodGet:
		if !requireSelfOrStaff(w, claims, id) {
			return
		}
		user, err := s.app.GetUser(id)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	case http.MethodPut:
		if !requireRole(w, claims, domain.RoleAdmin) {
			return
		}
		var req updateUserRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		user, err := s.app.UpdateUser(id, app.UpdateUserInput{
			FirstName:              req.FirstName,
			LastName:               req.LastName,
			Role:                   req.Role,
			IsActive:               req.IsActive,
			TenantApproval:         req.TenantApproval,
			LanguagePreference:     req.LanguagePreference,
			NotificationPreference: req.NotificationPreference,
		})
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	case http.MethodDelete:
		if !requireRole(w, claims, domain.RoleAdmin) {
			return
		}
		if err := s.app.DeleteUser(id); err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleSetFCMToken(w http.ResponseWriter, r *http.Request, claims auth.Claims, id string) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	if claims.UserID != id {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}
	var req fcmTokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.app.SetFCMToken(id, req.Token); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

type signUpRequest struct {
	FirstName              string `json:"firstName"`
	LastName               string `json:"lastName"`
	Email                  string `json:"email"`
	Password               string `json:"password"`
	Role                   string `json:"role"`
	LanguagePreference     string `json:"languagePreference"`
	NotificationPreference string `json:"notificationPreference"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type updateUserRequest struct {
	FirstName              *string                `json:"firstName"`
	LastName               *string                `json:"lastName"`
	Role                   *domain.UserRole       `json:"role"`
	IsActive               *bool                  `json:"isActive"`
	TenantApproval         *domain.TenantApproval `json:"tenantApproval"`
	LanguagePreference     *string                `json:"languagePreference"`
	NotificationPreference *string                `json:"notificationPreference"`
}

type fcmTokenRequest struct {
	Token string `json:"fcmToken"`
}
