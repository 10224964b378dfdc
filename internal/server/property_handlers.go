package server

import (
	"io"
	"net/http"
	"strings"
	"time"

	"eliterentals/pkg/domain"
)

// Listings are publicly readable; mutations require Admin or PropertyManager.
func (s *Server) handleProperties(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		properties, err := s.app.ListProperties()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": properties, "count": len(properties)})
	case http.MethodPost:
		claims, ok := s.authenticate(w, r)
		if !ok {
			return
		}
		if !requireRole(w, claims, domain.StaffRoles...) {
			return
		}
		var req propertyRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		managerID := req.ManagerID
		if managerID == "" {
			managerID = claims.UserID
		}
		property, err := s.app.CreateProperty(req.toDomain(managerID))
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, property)
	default:
		methodNotAllowed(w)
	}
}

// /api/property/{id}, /api/property/{id}/status, /api/property/{id}/images,
// /api/property/images/{imageId}
func (s *Server) handlePropertyPath(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/property/")
	parts := strings.SplitN(path, "/", 2)
	id := parts[0]
	if id == "" {
		notFound(w, "not found")
		return
	}
	if id == "images" {
		if len(parts) != 2 || parts[1] == "" {
			notFound(w, "not found")
			return
		}
		s.handlePropertyImageDownload(w, r, parts[1])
		return
	}
	if len(parts) == 2 {
		switch parts[1] {
		case "status":
			s.handlePropertyStatus(w, r, id)
		case "images":
			s.handlePropertyImages(w, r, id)
		default:
			notFound(w, "not found")
		}
		return
	}
	switch r.Method {
	case http.MethodGet:
		property, err := s.app.GetProperty(id)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, property)
	case http.MethodPut:
		claims, ok := s.authenticate(w, r)
		if !ok {
			return
		}
		if !requireRole(w, claims, domain.StaffRoles...) {
			return
		}
		var req propertyRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		property, err := s.app.UpdateProperty(id, req.toDomain(req.ManagerID))
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, property)
	case http.MethodDelete:
		claims, ok := s.authenticate(w, r)
		if !ok {
			return
		}
		if !requireRole(w, claims, domain.StaffRoles...) {
			return
		}
		if err := s.app.DeleteProperty(r.Context(), id); err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handlePropertyStatus(w http.ResponseWriter, r *http.Request, id string) {
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
	var req propertyStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.app.SetPropertyStatus(id, domain.PropertyStatus(req.Status)); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handlePropertyImages(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		images, err := s.app.ListPropertyImages(id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": images, "count": len(images)})
	case http.MethodPost:
		claims, ok := s.authenticate(w, r)
		if !ok {
			return
		}
		if !requireRole(w, claims, domain.StaffRoles...) {
			return
		}
		file, header, ok := s.uploadedFile(w, r)
		if !ok {
			return
		}
		defer file.Close()
		image, err := s.app.AddPropertyImage(r.Context(), id, file, header.size, header.contentType)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, image)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handlePropertyImageDownload(w http.ResponseWriter, r *http.Request, imageID string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	rc, contentType, err := s.app.OpenPropertyImage(r.Context(), imageID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	defer rc.Close()
	streamBlob(w, rc, contentType)
}

type uploadHeader struct {
	size        int64
	contentType string
}

// uploadedFile extracts the multipart "file" field with size limits applied.
func (s *Server) uploadedFile(w http.ResponseWriter, r *http.Request) (io.ReadCloser, uploadHeader, bool) {
	if s.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	}
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return nil, uploadHeader{}, false
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required (field: file)")
		return nil, uploadHeader{}, false
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return file, uploadHeader{size: header.Size, contentType: contentType}, true
}

func streamBlob(w http.ResponseWriter, rc io.Reader, contentType string) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, rc)
}

type propertyRequest struct {
	ManagerID    string  `json:"managerId"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	Province     string  `json:"province"`
	Country      string  `json:"country"`
	RentAmount   float64 `json:"rentAmount"`
	Bedrooms     int     `json:"numOfBedrooms"`
	Bathrooms    int     `json:"numOfBathrooms"`
	ParkingType  string  `json:"parkingType"`
	ParkingSpots int     `json:"numOfParkingSpots"`
	PetFriendly  bool    `json:"petFriendly"`
}

func (req propertyRequest) toDomain(managerID string) domain.Property {
	return domain.Property{
		ManagerID:    managerID,
		Title:        req.Title,
		Description:  req.Description,
		Address:      req.Address,
		City:         req.City,
		Province:     req.Province,
		Country:      req.Country,
		RentAmount:   req.RentAmount,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		ParkingType:  req.ParkingType,
		ParkingSpots: req.ParkingSpots,
		PetFriendly:  req.PetFriendly,
		ListingDate:  time.Now().UTC(),
	}
}

type propertyStatusRequest struct {
	Status string `json:"status"`
}
