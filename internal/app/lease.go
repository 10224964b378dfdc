package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"eliterentals/internal/util"
	"eliterentals/pkg/domain"
	"eliterentals/pkg/notify"
	"eliterentals/pkg/store"
)

// CreateLeaseInput carries the fields accepted at lease creation.
type CreateLeaseInput struct {
	PropertyID string
	TenantID   string
	StartDate  time.Time
	EndDate    time.Time
	Deposit    float64
}

// CreateLease activates a lease and flips the property to Occupied as one
// atomic unit. A welcome email to the tenant is attempted in the background;
// its failure never affects the result.
func (a *App) CreateLease(ctx context.Context, in CreateLeaseInput) (domain.Lease, error) {
	if in.PropertyID == "" || in.TenantID == "" {
		return domain.Lease{}, fmt.Errorf("%w: propertyId and tenantId required", ErrValidation)
	}
	if !in.EndDate.After(in.StartDate) {
		return domain.Lease{}, fmt.Errorf("%w: endDate must be after startDate", ErrValidation)
	}
	property, ok, err := a.store.GetProperty(in.PropertyID)
	if err != nil {
		return domain.Lease{}, fmt.Errorf("fetch property: %w", err)
	}
	if !ok {
		return domain.Lease{}, ErrNotFound
	}
	tenant, ok, err := a.store.GetUser(in.TenantID)
	if err != nil {
		return domain.Lease{}, fmt.Errorf("fetch tenant: %w", err)
	}
	if !ok {
		return domain.Lease{}, ErrNotFound
	}
	lease := domain.Lease{
		ID:         util.NewID(),
		PropertyID: in.PropertyID,
		TenantID:   in.TenantID,
		StartDate:  in.StartDate.UTC(),
		EndDate:    in.EndDate.UTC(),
		Deposit:    in.Deposit,
		Status:     domain.LeaseActive,
	}
	if err := a.store.CreateLease(lease); err != nil {
		if errors.Is(err, store.ErrPropertyUnavailable) {
			return domain.Lease{}, ErrPropertyOccupied
		}
		return domain.Lease{}, fmt.Errorf("create lease: %w", err)
	}
	go a.sendLeaseWelcome(tenant, property, lease)
	return lease, nil
}

func (a *App) sendLeaseWelcome(tenant domain.User, property domain.Property, lease domain.Lease) {
	if tenant.Email == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your lease for <b>%s</b> starts on %s and runs until %s.</p><p>Welcome home!</p>",
		tenant.FirstName, property.Title,
		lease.StartDate.Format("2 January 2006"), lease.EndDate.Format("2 January 2006"),
	)
	notify.TryEmail(ctx, a.email, tenant.Email, "Welcome to your new home", notify.WrapEmail("Lease confirmed", body))
}

// GetLease returns a single lease.
func (a *App) GetLease(id string) (domain.Lease, error) {
	lease, ok, err := a.store.GetLease(id)
	if err != nil {
		return domain.Lease{}, fmt.Errorf("fetch lease: %w", err)
	}
	if !ok {
		return domain.Lease{}, ErrNotFound
	}
	return lease, nil
}

// ListLeases returns all non-archived leases.
func (a *App) ListLeases() ([]domain.Lease, error) {
	return a.store.ListLeases()
}

// ListArchivedLeases returns archived leases only.
func (a *App) ListArchivedLeases() ([]domain.Lease, error) {
	return a.store.ListArchivedLeases()
}

// UpdateLeaseInput carries the scalar lease fields; nil means unchanged.
// Property and tenant associations are never updatable.
type UpdateLeaseInput struct {
	StartDate *time.Time
	EndDate   *time.Time
	Deposit   *float64
	Status    *domain.LeaseStatus
}

// UpdateLease applies a scalar-field edit to a lease.
func (a *App) UpdateLease(id string, in UpdateLeaseInput) (domain.Lease, error) {
	lease, ok, err := a.store.GetLease(id)
	if err != nil {
		return domain.Lease{}, fmt.Errorf("fetch lease: %w", err)
	}
	if !ok {
		return domain.Lease{}, ErrNotFound
	}
	if in.StartDate != nil {
		lease.StartDate = in.StartDate.UTC()
	}
	if in.EndDate != nil {
		lease.EndDate = in.EndDate.UTC()
	}
	if in.Deposit != nil {
		lease.Deposit = *in.Deposit
	}
	if in.Status != nil {
		lease.Status = *in.Status
	}
	if !lease.EndDate.After(lease.StartDate) {
		return domain.Lease{}, fmt.Errorf("%w: endDate must be after startDate", ErrValidation)
	}
	if err := a.store.UpdateLease(lease); err != nil {
		return domain.Lease{}, fmt.Errorf("update lease: %w", err)
	}
	return lease, nil
}

// ArchiveLease soft-deletes a lease and frees its property.
func (a *App) ArchiveLease(id string) (domain.Lease, error) {
	lease, ok, err := a.store.GetLease(id)
	if err != nil {
		return domain.Lease{}, fmt.Errorf("fetch lease: %w", err)
	}
	if !ok {
		return domain.Lease{}, ErrNotFound
	}
	now := time.Now().UTC()
	lease.IsArchived = true
	lease.ArchivedAt = &now
	lease.Status = domain.LeaseArchived
	if err := a.store.UpdateLease(lease); err != nil {
		return domain.Lease{}, fmt.Errorf("archive lease: %w", err)
	}
	if err := a.store.SetPropertyStatus(lease.PropertyID, domain.PropertyAvailable); err != nil {
		return domain.Lease{}, fmt.Errorf("free property: %w", err)
	}
	return lease, nil
}

// RestoreLease reverses an archive and re-occupies the property.
func (a *App) RestoreLease(id string) (domain.Lease, error) {
	lease, ok, err := a.store.GetLease(id)
	if err != nil {
		return domain.Lease{}, fmt.Errorf("fetch lease: %w", err)
	}
	if !ok {
		return domain.Lease{}, ErrNotFound
	}
	lease.IsArchived = false
	lease.ArchivedAt = nil
	lease.Status = domain.LeaseActive
	if err := a.store.UpdateLease(lease); err != nil {
		return domain.Lease{}, fmt.Errorf("restore lease: %w", err)
	}
	if err := a.store.SetPropertyStatus(lease.PropertyID, domain.PropertyOccupied); err != nil {
		return domain.Lease{}, fmt.Errorf("occupy property: %w", err)
	}
	return lease, nil
}

// DeleteLease permanently removes an archived lease, freeing its property.
// Non-archived leases are rejected.
func (a *App) DeleteLease(ctx context.Context, id string) error {
	lease, ok, err := a.store.GetLease(id)
	if err != nil {
		return fmt.Errorf("fetch lease: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	if !lease.IsArchived {
		return ErrLeaseNotArchived
	}
	if err := a.store.SetPropertyStatus(lease.PropertyID, domain.PropertyAvailable); err != nil {
		return fmt.Errorf("free property: %w", err)
	}
	if lease.DocumentKey != "" {
		if err := a.objects.Delete(ctx, lease.DocumentKey); err != nil {
			return fmt.Errorf("delete lease document: %w", err)
		}
	}
	return a.store.DeleteLease(id)
}

// AttachLeaseDocument stores the signed lease document blob.
func (a *App) AttachLeaseDocument(ctx context.Context, leaseID string, r io.Reader, size int64, contentType string) (domain.Lease, error) {
	lease, ok, err := a.store.GetLease(leaseID)
	if err != nil {
		return domain.Lease{}, fmt.Errorf("fetch lease: %w", err)
	}
	if !ok {
		return domain.Lease{}, ErrNotFound
	}
	key := fmt.Sprintf("lease-documents/%s", leaseID)
	if err := a.objects.Put(ctx, key, r, size, contentType); err != nil {
		return domain.Lease{}, fmt.Errorf("store document: %w", err)
	}
	lease.DocumentKey = key
	lease.DocumentType = contentType
	if err := a.store.UpdateLease(lease); err != nil {
		return domain.Lease{}, fmt.Errorf("record document: %w", err)
	}
	return lease, nil
}

// OpenLeaseDocument streams the lease document. The caller must close it.
func (a *App) OpenLeaseDocument(ctx context.Context, leaseID string) (io.ReadCloser, string, error) {
	lease, ok, err := a.store.GetLease(leaseID)
	if err != nil {
		return nil, "", fmt.Errorf("fetch lease: %w", err)
	}
	if !ok {
		return nil, "", ErrNotFound
	}
	if lease.DocumentKey == "" {
		return nil, "", ErrNotFound
	}
	rc, err := a.objects.Get(ctx, lease.DocumentKey)
	if err != nil {
		return nil, "", fmt.Errorf("open document: %w", err)
	}
	return rc, lease.DocumentType, nil
}
