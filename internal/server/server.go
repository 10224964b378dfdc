package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"eliterentals/internal/app"
	"eliterentals/internal/ratelimit"
	"eliterentals/internal/util"
	"eliterentals/pkg/auth"
	"eliterentals/pkg/domain"
)

// Config wires required dependencies for the HTTP server.
type Config struct {
	App    *app.App
	Tokens *auth.TokenService

	// AuthLimiter rate limits login and signup. Nil disables limiting.
	AuthLimiter *ratelimit.FixedWindowLimiter

	// TrustedProxies controls which peers may set forwarded-for headers.
	TrustedProxies *util.TrustedProxies

	MaxUploadBytes int64
}

// Server exposes the REST API.
type Server struct {
	app            *app.App
	tokens         *auth.TokenService
	authLimiter    *ratelimit.FixedWindowLimiter
	trustedProxies *util.TrustedProxies
	mux            *http.ServeMux
	maxUploadBytes int64
}

// New constructs the server with routes configured.
func New(cfg Config) (*Server, error) {
	if cfg.App == nil {
		return nil, errors.New("app is required")
	}
	if cfg.Tokens == nil {
		return nil, errors.New("token service is required")
	}
	maxUploadBytes := cfg.MaxUploadBytes
	if maxUploadBytes <= 0 {
		maxUploadBytes = 20 * 1024 * 1024
	}
	s := &Server{
		app:            cfg.App,
		tokens:         cfg.Tokens,
		authLimiter:    cfg.AuthLimiter,
		trustedProxies: cfg.TrustedProxies,
		mux:            http.NewServeMux(),
		maxUploadBytes: maxUploadBytes,
	}
	s.routes()
	return s, nil
}

// Router returns the configured handler with the middleware chain applied.
func (s *Server) Router() http.Handler {
	return util.WithRequestID(util.WithRequestLog(util.WithSecurityHeaders(util.WithCORS(s.mux))))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)

	s.mux.HandleFunc("/api/users/signup", s.withAuthLimit(s.handleSignUp))
	s.mux.HandleFunc("/api/users/login", s.withAuthLimit(s.handleLogin))
	s.mux.Handle("/api/users", s.withRoles(s.handleUsers, domain.RoleAdmin))
	s.mux.Handle("/api/users/", s.withUser(s.handleUserByID))

	s.mux.HandleFunc("/api/property", s.handleProperties)
	s.mux.HandleFunc("/api/property/", s.handlePropertyPath)

	s.mux.Handle("/api/lease", s.withUser(s.handleLeases))
	s.mux.Handle("/api/lease/", s.withUser(s.handleLeasePath))

	s.mux.Handle("/api/payment", s.withUser(s.handlePayments))
	s.mux.Handle("/api/payment/", s.withUser(s.handlePaymentPath))

	s.mux.Handle("/api/maintenance", s.withUser(s.handleMaintenanceCollection))
	s.mux.Handle("/api/maintenance/", s.withUser(s.handleMaintenancePath))

	s.mux.Handle("/api/message", s.withUser(s.handleMessages))
	s.mux.Handle("/api/message/", s.withUser(s.handleMessagePath))

	s.mux.Handle("/api/notification", s.withRoles(s.handleNotifications, domain.StaffRoles...))
	s.mux.Handle("/api/notification/", s.withUser(s.handleNotificationPath))

	s.mux.HandleFunc("/api/applications", s.handleApplications)
	s.mux.HandleFunc("/api/applications/", s.handleApplicationPath)

	s.mux.Handle("/api/invoice", s.withRoles(s.handleInvoices, domain.StaffRoles...))
	s.mux.Handle("/api/invoice/", s.withRoles(s.handleInvoicePath, domain.StaffRoles...))

	s.mux.Handle("/api/report", s.withRoles(s.handleReports, domain.StaffRoles...))
	s.mux.Handle("/api/report/", s.withRoles(s.handleReportPath, domain.StaffRoles...))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// withAuthLimit applies the login/signup rate limit keyed by client IP.
func (s *Server) withAuthLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.authLimiter != nil {
			ip := util.ClientIP(r, s.trustedProxies)
			if !s.authLimiter.Allow(ip) {
				writeError(w, http.StatusTooManyRequests, "too many requests")
				return
			}
		}
		next(w, r)
	}
}

type claimsHandler func(http.ResponseWriter, *http.Request, auth.Claims)

// withUser requires a valid bearer token; role checks happen per operation.
func (s *Server) withUser(next claimsHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := s.authenticate(w, r)
		if !ok {
			return
		}
		next(w, r, claims)
	})
}

// withRoles requires a valid bearer token carrying one of the given roles.
func (s *Server) withRoles(next claimsHandler, roles ...domain.UserRole) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := s.authenticate(w, r)
		if !ok {
			return
		}
		if !hasRole(claims.Role, roles) {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		next(w, r, claims)
	})
}

func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) (auth.Claims, bool) {
	token, ok := bearerToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return auth.Claims{}, false
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return auth.Claims{}, false
	}
	return claims, true
}

// requireRole enforces a per-operation role check inside a handler.
func requireRole(w http.ResponseWriter, claims auth.Claims, roles ...domain.UserRole) bool {
	if hasRole(claims.Role, roles) {
		return true
	}
	writeError(w, http.StatusForbidden, "forbidden")
	return false
}

// requireSelfOrStaff allows the user itself plus Admin/PropertyManager.
func requireSelfOrStaff(w http.ResponseWriter, claims auth.Claims, userID string) bool {
	if claims.UserID == userID || hasRole(claims.Role, domain.StaffRoles) {
		return true
	}
	writeError(w, http.StatusForbidden, "forbidden")
	return false
}

func hasRole(role domain.UserRole, allowed []domain.UserRole) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", false
	}
	return token, true
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func notFound(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusNotFound, msg)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{
		Error:     msg,
		RequestID: strings.TrimSpace(w.Header().Get("X-Request-Id")),
	})
}

// writeAppError maps workflow sentinels to HTTP statuses.
func writeAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, app.ErrValidation), errors.Is(err, app.ErrNotACaretaker):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrPropertyOccupied):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, app.ErrLeaseNotArchived):
		writeError(w, http.StatusPreconditionFailed, err.Error())
	case errors.Is(err, app.ErrEmailAlreadyExists):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, app.ErrInvalidCredentials), errors.Is(err, app.ErrUserDisabled):
		writeError(w, http.StatusUnauthorized, app.ErrInvalidCredentials.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
