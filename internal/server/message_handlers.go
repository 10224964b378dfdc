package server

import (
	"net/http"
	"strings"

	"eliterentals/pkg/auth"
	"eliterentals/pkg/domain"
)

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request, claims auth.Claims) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req sendMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	senderID := req.SenderID
	if senderID == "" {
		senderID = claims.UserID
	}
	msg, err := s.app.SendDirectMessage(r.Context(), senderID, req.ReceiverID, req.Text)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

// /api/message/broadcast, /announcements/{id}, /conversation/{a}/{b},
// /inbox/{id}, /sent/{id}, /archive/{id}, /restore/{id}, /{id}
func (s *Server) handleMessagePath(w http.ResponseWriter, r *http.Request, claims auth.Claims) {
	path := strings.TrimPrefix(r.URL.Path, "/api/message/")
	parts := strings.Split(path, "/")
	head := parts[0]
	if head == "" {
		notFound(w, "not found")
		return
	}

	switch head {
	case "broadcast":
		s.handleBroadcast(w, r, claims)
	case "announcements":
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
		msgs, err := s.app.GetAnnouncements(parts[1])
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": msgs, "count": len(msgs)})
	case "conversation":
		if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
			notFound(w, "not found")
			return
		}
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		if claims.UserID != parts[1] && claims.UserID != parts[2] && !requireRole(w, claims, domain.RoleAdmin) {
			return
		}
		msgs, err := s.app.ListConversation(parts[1], parts[2])
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": msgs, "count": len(msgs)})
	case "inbox", "sent":
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
		var (
			msgs []domain.Message
			err  error
		)
		if head == "inbox" {
			msgs, err = s.app.ListInbox(parts[1])
		} else {
			msgs, err = s.app.ListSent(parts[1])
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": msgs, "count": len(msgs)})
	case "archive", "restore":
		if len(parts) != 2 || parts[1] == "" {
			notFound(w, "not found")
			return
		}
		if r.Method != http.MethodPut {
			methodNotAllowed(w)
			return
		}
		var (
			msg domain.Message
			err error
		)
		if head == "archive" {
			msg, err = s.app.ArchiveMessage(parts[1])
		} else {
			msg, err = s.app.RestoreMessage(parts[1])
		}
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, msg)
	default:
		if len(parts) != 1 {
			notFound(w, "not found")
			return
		}
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		msg, err := s.app.GetMessage(head)
		if err != nil {
			writeAppError(w, err)
			return
		}
		if msg.SenderID != claims.UserID && msg.ReceiverID != claims.UserID && !msg.IsBroadcast {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		writeJSON(w, http.StatusOK, msg)
	}
}

func (s *Server) handleBroadcast(w http.ResponseWriter, r *http.Request, claims auth.Claims) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if !requireRole(w, claims, domain.StaffRoles...) {
		return
	}
	var req broadcastRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	msg, err := s.app.SendBroadcast(r.Context(), claims.UserID, req.Text, domain.UserRole(req.TargetRole))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

type sendMessageRequest struct {
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Text       string `json:"messageText"`
}

type broadcastRequest struct {
	Text       string `json:"messageText"`
	TargetRole string `json:"targetRole"`
}
