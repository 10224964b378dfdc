package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"eliterentals/internal/util"
	"eliterentals/pkg/domain"
	"eliterentals/pkg/notify"
)

// CreateMaintenance records a tenant's maintenance request.
func (a *App) CreateMaintenance(m domain.Maintenance) (domain.Maintenance, error) {
	if m.TenantID == "" || m.PropertyID == "" {
		return domain.Maintenance{}, fmt.Errorf("%w: tenantId and propertyId required", ErrValidation)
	}
	if strings.TrimSpace(m.Description) == "" {
		return domain.Maintenance{}, fmt.Errorf("%w: description required", ErrValidation)
	}
	m.ID = util.NewID()
	if m.Status == "" {
		m.Status = domain.MaintenancePending
	}
	m.CreatedAt = time.Now().UTC()
	m.UpdatedAt = nil
	if err := a.store.CreateMaintenance(m); err != nil {
		return domain.Maintenance{}, fmt.Errorf("create maintenance: %w", err)
	}
	return m, nil
}

// GetMaintenance returns a single request.
func (a *App) GetMaintenance(id string) (domain.Maintenance, error) {
	m, ok, err := a.store.GetMaintenance(id)
	if err != nil {
		return domain.Maintenance{}, fmt.Errorf("fetch maintenance: %w", err)
	}
	if !ok {
		return domain.Maintenance{}, ErrNotFound
	}
	return m, nil
}

// ListMaintenance returns every request on record.
func (a *App) ListMaintenance() ([]domain.Maintenance, error) {
	return a.store.ListMaintenance()
}

// ListMaintenanceByTenant returns a tenant's own requests.
func (a *App) ListMaintenanceByTenant(tenantID string) ([]domain.Maintenance, error) {
	return a.store.ListMaintenanceByTenant(tenantID)
}

// ListMaintenanceByCaretaker returns the requests assigned to a caretaker.
func (a *App) ListMaintenanceByCaretaker(caretakerID string) ([]domain.Maintenance, error) {
	return a.store.ListMaintenanceByCaretaker(caretakerID)
}

// UpdateMaintenanceStatus writes the new status and updatedAt unconditionally,
// then independently notifies the tenant and the assigned caretaker. Each
// push is best-effort; one failing never suppresses the other.
func (a *App) UpdateMaintenanceStatus(ctx context.Context, id string, status domain.MaintenanceStatus) (domain.Maintenance, error) {
	if strings.TrimSpace(string(status)) == "" {
		return domain.Maintenance{}, fmt.Errorf("%w: status required", ErrValidation)
	}
	m, ok, err := a.store.GetMaintenance(id)
	if err != nil {
		return domain.Maintenance{}, fmt.Errorf("fetch maintenance: %w", err)
	}
	if !ok {
		return domain.Maintenance{}, ErrNotFound
	}
	now := time.Now().UTC()
	m.Status = status
	m.UpdatedAt = &now
	if err := a.store.UpdateMaintenance(m); err != nil {
		return domain.Maintenance{}, fmt.Errorf("update maintenance: %w", err)
	}

	if tenant, ok, err := a.store.GetUser(m.TenantID); err == nil && ok {
		notify.TryPush(ctx, a.push, tenant.FCMToken,
			"Maintenance update",
			fmt.Sprintf("Your maintenance request is now %s.", status),
			map[string]string{
				"type":          notify.TypeMaintenanceUpdate,
				"maintenanceId": m.ID,
				"status":        string(status),
			})
	}
	if m.AssignedCaretakerID != "" {
		if caretaker, ok, err := a.store.GetUser(m.AssignedCaretakerID); err == nil && ok {
			notify.TryPush(ctx, a.push, caretaker.FCMToken,
				"Task update",
				fmt.Sprintf("Task status changed to %s.", status),
				map[string]string{
					"type":          notify.TypeTaskUpdate,
					"maintenanceId": m.ID,
					"status":        string(status),
				})
		}
	}
	return m, nil
}

// AssignCaretaker routes a request to a caretaker. The target user must exist
// and carry the Caretaker role.
func (a *App) AssignCaretaker(ctx context.Context, id, caretakerID string) (domain.Maintenance, error) {
	if caretakerID == "" {
		return domain.Maintenance{}, fmt.Errorf("%w: caretakerId required", ErrValidation)
	}
	m, ok, err := a.store.GetMaintenance(id)
	if err != nil {
		return domain.Maintenance{}, fmt.Errorf("fetch maintenance: %w", err)
	}
	if !ok {
		return domain.Maintenance{}, ErrNotFound
	}
	caretaker, ok, err := a.store.GetUser(caretakerID)
	if err != nil {
		return domain.Maintenance{}, fmt.Errorf("fetch caretaker: %w", err)
	}
	if !ok || caretaker.Role != domain.RoleCaretaker {
		return domain.Maintenance{}, ErrNotACaretaker
	}
	now := time.Now().UTC()
	m.AssignedCaretakerID = caretakerID
	m.UpdatedAt = &now
	if err := a.store.UpdateMaintenance(m); err != nil {
		return domain.Maintenance{}, fmt.Errorf("assign caretaker: %w", err)
	}
	notify.TryPush(ctx, a.push, caretaker.FCMToken,
		"New task assigned",
		fmt.Sprintf("You have been assigned a %s task.", m.Category),
		map[string]string{
			"type":          notify.TypeTaskAssignment,
			"maintenanceId": m.ID,
			"tenantId":      m.TenantID,
			"propertyId":    m.PropertyID,
		})
	return m, nil
}

// AttachMaintenanceProof stores a photo or document backing the request.
func (a *App) AttachMaintenanceProof(ctx context.Context, id string, r io.Reader, size int64, contentType string) (domain.Maintenance, error) {
	m, ok, err := a.store.GetMaintenance(id)
	if err != nil {
		return domain.Maintenance{}, fmt.Errorf("fetch maintenance: %w", err)
	}
	if !ok {
		return domain.Maintenance{}, ErrNotFound
	}
	key := fmt.Sprintf("maintenance-proofs/%s", id)
	if err := a.objects.Put(ctx, key, r, size, contentType); err != nil {
		return domain.Maintenance{}, fmt.Errorf("store proof: %w", err)
	}
	m.ProofKey = key
	m.ProofType = contentType
	if err := a.store.UpdateMaintenance(m); err != nil {
		return domain.Maintenance{}, fmt.Errorf("record proof: %w", err)
	}
	return m, nil
}

// OpenMaintenanceProof streams the proof blob. The caller must close it.
func (a *App) OpenMaintenanceProof(ctx context.Context, id string) (io.ReadCloser, string, error) {
	m, ok, err := a.store.GetMaintenance(id)
	if err != nil {
		return nil, "", fmt.Errorf("fetch maintenance: %w", err)
	}
	if !ok {
		return nil, "", ErrNotFound
	}
	if m.ProofKey == "" {
		return nil, "", ErrNotFound
	}
	rc, err := a.objects.Get(ctx, m.ProofKey)
	if err != nil {
		return nil, "", fmt.Errorf("open proof: %w", err)
	}
	return rc, m.ProofType, nil
}
