package server

import (
	"net/http"
	"strings"

	"eliterentals/pkg/auth"
	"eliterentals/pkg/domain"
)

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request, _ auth.Claims) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req createNotificationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	n, err := s.app.CreateNotification(r.Context(), req.UserID, req.Message, req.Data)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

// /api/notification/broadcast, /api/notification/user/{id},
// /api/notification/{id}/read
func (s *Server) handleNotificationPath(w http.ResponseWriter, r *http.Request, claims auth.Claims) {
	path := strings.TrimPrefix(r.URL.Path, "/api/notification/")
	parts := strings.SplitN(path, "/", 2)
	head := parts[0]
	if head == "" {
		notFound(w, "not found")
		return
	}

	switch head {
	case "broadcast":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		if !requireRole(w, claims, domain.StaffRoles...) {
			return
		}
		var req broadcastNotificationRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		count, err := s.app.BroadcastNotification(r.Context(), req.Message, domain.UserRole(req.TargetRole))
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"delivered": count})
	case "user":
		if len(parts) != 2 || parts[1] == "" {
			notFound(w, "not found")
			return
		}
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		if !requireSelfOrStaff(w, claims, parts[1]) {
			return
		}
		items, err := s.app.ListNotifications(parts[1])
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
	default:
		if len(parts) != 2 || parts[1] != "read" {
			notFound(w, "not found")
			return
		}
		if r.Method != http.MethodPut {
			methodNotAllowed(w)
			return
		}
		if err := s.app.MarkNotificationRead(head); err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
	}
}

type createNotificationRequest struct {
	UserID  string            `json:"userId"`
	Message string            `json:"message"`
	Data    map[string]string `json:"data"`
}

type broadcastNotificationRequest struct {
	Message    string `json:"message"`
	TargetRole string `json:"targetRole"`
}
