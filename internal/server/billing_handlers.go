package server

import (
	"net/http"
	"strings"
	"time"

	"eliterentals/pkg/auth"
	"eliterentals/pkg/domain"
)

func (s *Server) handleInvoices(w http.ResponseWriter, r *http.Request, _ auth.Claims) {
	switch r.Method {
	case http.MethodGet:
		items, err := s.app.ListInvoices()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
	case http.MethodPost:
		var req invoiceRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		invoice, err := s.app.CreateInvoice(req.toDomain())
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, invoice)
	default:
		methodNotAllowed(w)
	}
}

// /api/invoice/{id}
func (s *Server) handleInvoicePath(w http.ResponseWriter, r *http.Request, _ auth.Claims) {
	id := strings.TrimPrefix(r.URL.Path, "/api/invoice/")
	if id == "" || strings.Contains(id, "/") {
		notFound(w, "not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		invoice, err := s.app.GetInvoice(id)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, invoice)
	case http.MethodPut:
		var req invoiceRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		invoice, err := s.app.UpdateInvoice(id, req.toDomain())
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, invoice)
	case http.MethodDelete:
		if err := s.app.DeleteInvoice(r.Context(), id); err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request, claims auth.Claims) {
	switch r.Method {
	case http.MethodGet:
		items, err := s.app.ListReports()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
	case http.MethodPost:
		file, header, ok := s.uploadedFile(w, r)
		if !ok {
			return
		}
		defer file.Close()
		reportType := r.FormValue("type")
		report, err := s.app.CreateReport(r.Context(), claims.UserID, reportType, file, header.size, header.contentType)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, report)
	default:
		methodNotAllowed(w)
	}
}

// /api/report/{id} or /api/report/{id}/file
func (s *Server) handleReportPath(w http.ResponseWriter, r *http.Request, _ auth.Claims) {
	path := strings.TrimPrefix(r.URL.Path, "/api/report/")
	parts := strings.SplitN(path, "/", 2)
	id := parts[0]
	if id == "" {
		notFound(w, "not found")
		return
	}
	if len(parts) == 2 {
		if parts[1] != "file" {
			notFound(w, "not found")
			return
		}
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		rc, contentType, err := s.app.OpenReportFile(r.Context(), id)
		if err != nil {
			writeAppError(w, err)
			return
		}
		defer rc.Close()
		streamBlob(w, rc, contentType)
		return
	}
	switch r.Method {
	case http.MethodGet:
		report, err := s.app.GetReport(id)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, report)
	case http.MethodDelete:
		if err := s.app.DeleteReport(r.Context(), id); err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		methodNotAllowed(w)
	}
}

type invoiceRequest struct {
	TenantID string    `json:"tenantId"`
	LeaseID  string    `json:"leaseId"`
	Amount   float64   `json:"amount"`
	DueDate  time.Time `json:"dueDate"`
	Status   string    `json:"status"`
}

func (req invoiceRequest) toDomain() domain.Invoice {
	return domain.Invoice{
		TenantID: req.TenantID,
		LeaseID:  req.LeaseID,
		Amount:   req.Amount,
		DueDate:  req.DueDate,
		Status:   domain.InvoiceStatus(req.Status),
	}
}
