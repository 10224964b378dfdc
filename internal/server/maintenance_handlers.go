package server

import (
	"net/http"
	"strings"

	"eliterentals/pkg/auth"
	"eliterentals/pkg/domain"
)

func (s *Server) handleMaintenanceCollection(w http.ResponseWriter, r *http.Request, claims auth.Claims) {
	switch r.Method {
	case http.MethodGet:
		if !requireRole(w, claims, domain.StaffRoles...) {
			return
		}
		items, err := s.app.ListMaintenance()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
	case http.MethodPost:
		var req createMaintenanceRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		tenantID := req.TenantID
		if claims.Role == domain.RoleTenant {
			tenantID = claims.UserID
		}
		m, err := s.app.CreateMaintenance(domain.Maintenance{
			TenantID:    tenantID,
			PropertyID:  req.PropertyID,
			Description: req.Description,
			Category:    req.Category,
			Urgency:     req.Urgency,
		})
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, m)
	default:
		methodNotAllowed(w)
	}
}

// /api/maintenance/my-requests, /api/maintenance/caretaker-requests,
// /api/maintenance/{id}, /{id}/status, /{id}/assign-caretaker, /{id}/proof
func (s *Server) handleMaintenancePath(w http.ResponseWriter, r *http.Request, claims auth.Claims) {
	path := strings.TrimPrefix(r.URL.Path, "/api/maintenance/")
	parts := strings.SplitN(path, "/", 2)
	head := parts[0]
	if head == "" {
		notFound(w, "not found")
		return
	}

	switch head {
	case "my-requests":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		items, err := s.app.ListMaintenanceByTenant(claims.UserID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
		return
	case "caretaker-requests":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		if !requireRole(w, claims, domain.RoleCaretaker) {
			return
		}
		items, err := s.app.ListMaintenanceByCaretaker(claims.UserID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
		return
	}

	id := head
	if len(parts) == 2 {
		switch parts[1] {
		case "status":
			s.handleMaintenanceStatus(w, r, claims, id)
		case "assign-caretaker":
			s.handleAssignCaretaker(w, r, claims, id)
		case "proof":
			s.handleMaintenanceProof(w, r, id)
		default:
			notFound(w, "not found")
		}
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	m, err := s.app.GetMaintenance(id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleMaintenanceStatus(w http.ResponseWriter, r *http.Request, claims auth.Claims, id string) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	if !requireRole(w, claims, domain.RoleAdmin, domain.RolePropertyManager, domain.RoleCaretaker) {
		return
	}
	var req maintenanceStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	m, err := s.app.UpdateMaintenanceStatus(r.Context(), id, domain.MaintenanceStatus(req.Status))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleAssignCaretaker(w http.ResponseWriter, r *http.Request, claims auth.Claims, id string) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	if !requireRole(w, claims, domain.StaffRoles...) {
		return
	}
	var req assignCaretakerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	m, err := s.app.AssignCaretaker(r.Context(), id, req.CaretakerID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleMaintenanceProof(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		rc, contentType, err := s.app.OpenMaintenanceProof(r.Context(), id)
		if err != nil {
			writeAppError(w, err)
			return
		}
		defer rc.Close()
		streamBlob(w, rc, contentType)
	case http.MethodPost:
		file, header, ok := s.uploadedFile(w, r)
		if !ok {
			return
		}
		defer file.Close()
		m, err := s.app.AttachMaintenanceProof(r.Context(), id, file, header.size, header.contentType)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, m)
	default:
		methodNotAllowed(w)
	}
}

type createMaintenanceRequest struct {
	TenantID    string `json:"tenantId"`
	PropertyID  string `json:"propertyId"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Urgency     string `json:"urgency"`
}

type maintenanceStatusRequest struct {
	Status string `json:"status"`
}

type assignCaretakerRequest struct {
	CaretakerID string `json:"caretakerId"`
}
