package server

import (
	"net/http"
	"strings"

	"eliterentals/pkg/domain"
)

// Applications are submitted publicly; review requires staff.
func (s *Server) handleApplications(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req submitApplicationRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		application, err := s.app.SubmitApplication(r.Context(), domain.RentalApplication{
			PropertyID:    req.PropertyID,
			ApplicantName: req.ApplicantName,
			Email:         req.Email,
			Phone:         req.Phone,
		})
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, application)
	case http.MethodGet:
		claims, ok := s.authenticate(w, r)
		if !ok {
			return
		}
		if !requireRole(w, claims, domain.StaffRoles...) {
			return
		}
		items, err := s.app.ListApplications()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
	default:
		methodNotAllowed(w)
	}
}

// /api/applications/{id}, /{id}/status, /{id}/document
func (s *Server) handleApplicationPath(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/applications/")
	parts := strings.SplitN(path, "/", 2)
	id := parts[0]
	if id == "" {
		notFound(w, "not found")
		return
	}

	if len(parts) == 2 {
		switch parts[1] {
		case "status":
			s.handleApplicationStatus(w, r, id)
		case "document":
			s.handleApplicationDocument(w, r, id)
		default:
			notFound(w, "not found")
		}
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	claims, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	if !requireRole(w, claims, domain.StaffRoles...) {
		return
	}
	application, err := s.app.GetApplication(id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, application)
}

func (s *Server) handleApplicationStatus(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	claims, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	if !requireRole(w, claims, domain.StaffRoles...) {
		return
	}
	var req applicationStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	application, err := s.app.SetApplicationStatus(r.Context(), id, domain.ApplicationStatus(req.Status))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, application)
}

func (s *Server) handleApplicationDocument(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodPost:
		// Applicants may attach supporting documents without an account.
		file, header, ok := s.uploadedFile(w, r)
		if !ok {
			return
		}
		defer file.Close()
		application, err := s.app.AttachApplicationDocument(r.Context(), id, file, header.size, header.contentType)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, application)
	case http.MethodGet:
		claims, ok := s.authenticate(w, r)
		if !ok {
			return
		}
		if !requireRole(w, claims, domain.StaffRoles...) {
			return
		}
		rc, contentType, err := s.app.OpenApplicationDocument(r.Context(), id)
		if err != nil {
			writeAppError(w, err)
			return
		}
		defer rc.Close()
		streamBlob(w, rc, contentType)
	default:
		methodNotAllowed(w)
	}
}

type submitApplicationRequest struct {
	PropertyID    string `json:"propertyId"`
	ApplicantName string `json:"applicantName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
}

type applicationStatusRequest struct {
	Status string `json:"status"`
}
