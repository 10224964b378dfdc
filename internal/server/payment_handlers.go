package server

import (
	"net/http"
	"strings"
	"time"

	"eliterentals/pkg/auth"
	"eliterentals/pkg/domain"
)

func (s *Server) handlePayments(w http.ResponseWriter, r *http.Request, claims auth.Claims) {
	switch r.Method {
	case http.MethodGet:
		if !requireRole(w, claims, domain.StaffRoles...) {
			return
		}
		payments, err := s.app.ListPayments()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": payments, "count": len(payments)})
	case http.MethodPost:
		var req createPaymentRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		tenantID := req.TenantID
		if claims.Role == domain.RoleTenant {
			tenantID = claims.UserID
		}
		payment, err := s.app.CreatePayment(domain.Payment{
			TenantID: tenantID,
			Amount:   req.Amount,
			Date:     req.Date,
			Status:   domain.PaymentStatus(req.Status),
		})
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, payment)
	default:
		methodNotAllowed(w)
	}
}

// /api/payment/{id}, /api/payment/{id}/status, /api/payment/{id}/proof,
// /api/payment/tenant/{id}
func (s *Server) handlePaymentPath(w http.ResponseWriter, r *http.Request, claims auth.Claims) {
	path := strings.TrimPrefix(r.URL.Path, "/api/payment/")
	parts := strings.SplitN(path, "/", 2)
	head := parts[0]
	if head == "" {
		notFound(w, "not found")
		return
	}

	if head == "tenant" {
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
		payments, err := s.app.ListPaymentsByTenant(parts[1])
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": payments, "count": len(payments)})
		return
	}

	id := head
	if len(parts) == 2 {
		switch parts[1] {
		case "status":
			s.handlePaymentStatus(w, r, claims, id)
		case "proof":
			s.handlePaymentProof(w, r, claims, id)
		default:
			notFound(w, "not found")
		}
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	payment, err := s.app.GetPayment(id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	if !requireSelfOrStaff(w, claims, payment.TenantID) {
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func (s *Server) handlePaymentStatus(w http.ResponseWriter, r *http.Request, claims auth.Claims, id string) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	if !requireRole(w, claims, domain.StaffRoles...) {
		return
	}
	var req paymentStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	payment, err := s.app.UpdatePaymentStatus(r.Context(), id, domain.PaymentStatus(req.Status))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func (s *Server) handlePaymentProof(w http.ResponseWriter, r *http.Request, claims auth.Claims, id string) {
	switch r.Method {
	case http.MethodGet:
		payment, err := s.app.GetPayment(id)
		if err != nil {
			writeAppError(w, err)
			return
		}
		if !requireSelfOrStaff(w, claims, payment.TenantID) {
			return
		}
		rc, contentType, err := s.app.OpenPaymentProof(r.Context(), id)
		if err != nil {
			writeAppError(w, err)
			return
		}
		defer rc.Close()
		streamBlob(w, rc, contentType)
	case http.MethodPost:
		payment, err := s.app.GetPayment(id)
		if err != nil {
			writeAppError(w, err)
			return
		}
		if !requireSelfOrStaff(w, claims, payment.TenantID) {
			return
		}
		file, header, ok := s.uploadedFile(w, r)
		if !ok {
			return
		}
		defer file.Close()
		updated, err := s.app.AttachPaymentProof(r.Context(), id, file, header.size, header.contentType)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, updated)
	default:
		methodNotAllowed(w)
	}
}

type createPaymentRequest struct {
	TenantID string    `json:"tenantId"`
	Amount   float64   `json:"amount"`
	Date     time.Time `json:"date"`
	Status   string    `json:"status"`
}

type paymentStatusRequest struct {
	Status string `json:"status"`
}
