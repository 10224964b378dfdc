package server

import (
	"net/http"
	"strings"
	"time"

	"eliterentals/internal/app"
	"eliterentals/pkg/auth"
	"eliterentals/pkg/domain"
)

func (s *Server) handleLeases(w http.ResponseWriter, r *http.Request, claims auth.Claims) {
	switch r.Method {
	case http.MethodGet:
		leases, err := s.app.ListLeases()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": leases, "count": len(leases)})
	case http.MethodPost:
		if !requireRole(w, claims, domain.StaffRoles...) {
			return
		}
		var req createLeaseRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		lease, err := s.app.CreateLease(r.Context(), app.CreateLeaseInput{
			PropertyID: req.PropertyID,
			TenantID:   req.TenantID,
			StartDate:  req.StartDate,
			EndDate:    req.EndDate,
			Deposit:    req.Deposit,
		})
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, lease)
	default:
		methodNotAllowed(w)
	}
}

// /api/lease/{id}, /api/lease/{id}/document, /api/lease/archive/{id},
// /api/lease/restore/{id}, /api/lease/archived
func (s *Server) handleLeasePath(w http.ResponseWriter, r *http.Request, claims auth.Claims) {
	path := strings.TrimPrefix(r.URL.Path, "/api/lease/")
	parts := strings.SplitN(path, "/", 2)
	head := parts[0]
	if head == "" {
		notFound(w, "not found")
		return
	}

	switch head {
	case "archived":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		leases, err := s.app.ListArchivedLeases()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": leases, "count": len(leases)})
		return
	case "archive", "restore":
		if len(parts) != 2 || parts[1] == "" {
			notFound(w, "not found")
			return
		}
		if r.Method != http.MethodPut {
			methodNotAllowed(w)
			return
		}
		if !requireRole(w, claims, domain.StaffRoles...) {
			return
		}
		var (
			lease domain.Lease
			err   error
		)
		if head == "archive" {
			lease, err = s.app.ArchiveLease(parts[1])
		} else {
			lease, err = s.app.RestoreLease(parts[1])
		}
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, lease)
		return
	}

	id := head
	if len(parts) == 2 {
		if parts[1] != "document" {
			notFound(w, "not found")
			return
		}
		s.handleLeaseDocument(w, r, claims, id)
		return
	}
	switch r.Method {
	case http.MethodGet:
		lease, err := s.app.GetLease(id)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, lease)
	case http.MethodPut:
		if !requireRole(w, claims, domain.StaffRoles...) {
			return
		}
		var req updateLeaseRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		lease, err := s.app.UpdateLease(id, app.UpdateLeaseInput{
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
			Deposit:   req.Deposit,
			Status:    req.Status,
		})
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, lease)
	case http.MethodDelete:
		if !requireRole(w, claims, domain.StaffRoles...) {
			return
		}
		if err := s.app.DeleteLease(r.Context(), id); err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleLeaseDocument(w http.ResponseWriter, r *http.Request, claims auth.Claims, id string) {
	switch r.Method {
	case http.MethodGet:
		rc, contentType, err := s.app.OpenLeaseDocument(r.Context(), id)
		if err != nil {
			writeAppError(w, err)
			return
		}
		defer rc.Close()
		streamBlob(w, rc, contentType)
	case http.MethodPost:
		if !requireRole(w, claims, domain.StaffRoles...) {
			return
		}
		file, header, ok := s.uploadedFile(w, r)
		if !ok {
			return
		}
		defer file.Close()
		lease, err := s.app.AttachLeaseDocument(r.Context(), id, file, header.size, header.contentType)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, lease)
	default:
		methodNotAllowed(w)
	}
}

type createLeaseRequest struct {
	PropertyID string    `json:"propertyId"`
	TenantID   string    `json:"tenantId"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	Deposit    float64   `json:"deposit"`
}

type updateLeaseRequest struct {
	StartDate *time.Time          `json:"startDate"`
	EndDate   *time.Time          `json:"endDate"`
	Deposit   *float64            `json:"deposit"`
	Status    *domain.LeaseStatus `json:"status"`
}
