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

// SubmitApplication records a rental application and sends the applicant an
// acknowledgement email.
func (a *App) SubmitApplication(ctx context.Context, in domain.RentalApplication) (domain.RentalApplication, error) {
	if in.PropertyID == "" {
		return domain.RentalApplication{}, fmt.Errorf("%w: propertyId required", ErrValidation)
	}
	if strings.TrimSpace(in.ApplicantName) == "" || strings.TrimSpace(in.Email) == "" {
		return domain.RentalApplication{}, fmt.Errorf("%w: applicant name and email required", ErrValidation)
	}
	property, ok, err := a.store.GetProperty(in.PropertyID)
	if err != nil {
		return domain.RentalApplication{}, fmt.Errorf("fetch property: %w", err)
	}
	if !ok {
		return domain.RentalApplication{}, ErrNotFound
	}
	in.ID = util.NewID()
	in.Status = domain.ApplicationPending
	in.CreatedAt = time.Now().UTC()
	if err := a.store.CreateApplication(in); err != nil {
		return domain.RentalApplication{}, fmt.Errorf("create application: %w", err)
	}
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>We received your application for <b>%s</b>. Our team will review it and get back to you.</p>",
		in.ApplicantName, property.Title,
	)
	notify.TryEmail(ctx, a.email, in.Email, "Application received", notify.WrapEmail("Application received", body))
	return in, nil
}

// GetApplication returns a single application.
func (a *App) GetApplication(id string) (domain.RentalApplication, error) {
	app, ok, err := a.store.GetApplication(id)
	if err != nil {
		return domain.RentalApplication{}, fmt.Errorf("fetch application: %w", err)
	}
	if !ok {
		return domain.RentalApplication{}, ErrNotFound
	}
	return app, nil
}

// ListApplications returns every application on record.
func (a *App) ListApplications() ([]domain.RentalApplication, error) {
	return a.store.ListApplications()
}

// SetApplicationStatus transitions an application and emails the applicant
// the outcome.
func (a *App) SetApplicationStatus(ctx context.Context, id string, status domain.ApplicationStatus) (domain.RentalApplication, error) {
	switch status {
	case domain.ApplicationPending, domain.ApplicationApproved, domain.ApplicationRejected:
	default:
		return domain.RentalApplication{}, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	app, ok, err := a.store.GetApplication(id)
	if err != nil {
		return domain.RentalApplication{}, fmt.Errorf("fetch application: %w", err)
	}
	if !ok {
		return domain.RentalApplication{}, ErrNotFound
	}
	if err := a.store.SetApplicationStatus(id, status); err != nil {
		return domain.RentalApplication{}, fmt.Errorf("update application status: %w", err)
	}
	app.Status = status
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your rental application status is now <b>%s</b>.</p>",
		app.ApplicantName, status,
	)
	notify.TryEmail(ctx, a.email, app.Email, "Application update", notify.WrapEmail("Application update", body))
	return app, nil
}

// AttachApplicationDocument stores the supporting document blob.
func (a *App) AttachApplicationDocument(ctx context.Context, id string, r io.Reader, size int64, contentType string) (domain.RentalApplication, error) {
	app, ok, err := a.store.GetApplication(id)
	if err != nil {
		return domain.RentalApplication{}, fmt.Errorf("fetch application: %w", err)
	}
	if !ok {
		return domain.RentalApplication{}, ErrNotFound
	}
	key := fmt.Sprintf("application-documents/%s", id)
	if err := a.objects.Put(ctx, key, r, size, contentType); err != nil {
		return domain.RentalApplication{}, fmt.Errorf("store document: %w", err)
	}
	app.DocumentKey = key
	app.DocumentType = contentType
	if err := a.store.UpdateApplication(app); err != nil {
		return domain.RentalApplication{}, fmt.Errorf("record document: %w", err)
	}
	return app, nil
}

// OpenApplicationDocument streams the document blob. The caller must close it.
func (a *App) OpenApplicationDocument(ctx context.Context, id string) (io.ReadCloser, string, error) {
	app, ok, err := a.store.GetApplication(id)
	if err != nil {
		return nil, "", fmt.Errorf("fetch application: %w", err)
	}
	if !ok {
		return nil, "", ErrNotFound
	}
	if app.DocumentKey == "" {
		return nil, "", ErrNotFound
	}
	rc, err := a.objects.Get(ctx, app.DocumentKey)
	if err != nil {
		return nil, "", fmt.Errorf("open document: %w", err)
	}
	return rc, app.DocumentType, nil
}
