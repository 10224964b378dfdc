package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"eliterentals/internal/util"
	"eliterentals/pkg/domain"
)

// CreateInvoice records a rent invoice for a tenant.
func (a *App) CreateInvoice(inv domain.Invoice) (domain.Invoice, error) {
	if inv.TenantID == "" {
		return domain.Invoice{}, fmt.Errorf("%w: tenantId required", ErrValidation)
	}
	if inv.Amount <= 0 {
		return domain.Invoice{}, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	inv.ID = util.NewID()
	if inv.Status == "" {
		inv.Status = domain.InvoiceUnpaid
	}
	if err := a.store.CreateInvoice(inv); err != nil {
		return domain.Invoice{}, fmt.Errorf("create invoice: %w", err)
	}
	return inv, nil
}

// GetInvoice returns a single invoice.
func (a *App) GetInvoice(id string) (domain.Invoice, error) {
	inv, ok, err := a.store.GetInvoice(id)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("fetch invoice: %w", err)
	}
	if !ok {
		return domain.Invoice{}, ErrNotFound
	}
	return inv, nil
}

// ListInvoices returns every invoice on record.
func (a *App) ListInvoices() ([]domain.Invoice, error) {
	return a.store.ListInvoices()
}

// UpdateInvoice replaces the scalar fields of an invoice.
func (a *App) UpdateInvoice(id string, inv domain.Invoice) (domain.Invoice, error) {
	existing, ok, err := a.store.GetInvoice(id)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("fetch invoice: %w", err)
	}
	if !ok {
		return domain.Invoice{}, ErrNotFound
	}
	inv.ID = existing.ID
	if inv.TenantID == "" {
		inv.TenantID = existing.TenantID
	}
	if inv.LeaseID == "" {
		inv.LeaseID = existing.LeaseID
	}
	inv.PDFKey = existing.PDFKey
	inv.PDFType = existing.PDFType
	if err := a.store.UpdateInvoice(inv); err != nil {
		return domain.Invoice{}, fmt.Errorf("update invoice: %w", err)
	}
	return inv, nil
}

// DeleteInvoice removes an invoice and its stored pdf.
func (a *App) DeleteInvoice(ctx context.Context, id string) error {
	inv, ok, err := a.store.GetInvoice(id)
	if err != nil {
		return fmt.Errorf("fetch invoice: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	if inv.PDFKey != "" {
		if err := a.objects.Delete(ctx, inv.PDFKey); err != nil {
			return fmt.Errorf("delete invoice pdf: %w", err)
		}
	}
	return a.store.DeleteInvoice(id)
}

// CreateReport records a generated report and stores its file.
func (a *App) CreateReport(ctx context.Context, managerID, reportType string, r io.Reader, size int64, contentType string) (domain.Report, error) {
	if managerID == "" || reportType == "" {
		return domain.Report{}, fmt.Errorf("%w: managerId and type required", ErrValidation)
	}
	report := domain.Report{
		ID:          util.NewID(),
		ManagerID:   managerID,
		Type:        reportType,
		GeneratedAt: time.Now().UTC(),
	}
	if r != nil {
		report.FileKey = fmt.Sprintf("reports/%s", report.ID)
		report.FileType = contentType
		if err := a.objects.Put(ctx, report.FileKey, r, size, contentType); err != nil {
			return domain.Report{}, fmt.Errorf("store report file: %w", err)
		}
	}
	if err := a.store.CreateReport(report); err != nil {
		return domain.Report{}, fmt.Errorf("create report: %w", err)
	}
	return report, nil
}

// GetReport returns a single report.
func (a *App) GetReport(id string) (domain.Report, error) {
	report, ok, err := a.store.GetReport(id)
	if err != nil {
		return domain.Report{}, fmt.Errorf("fetch report: %w", err)
	}
	if !ok {
		return domain.Report{}, ErrNotFound
	}
	return report, nil
}

// ListReports returns every report on record.
func (a *App) ListReports() ([]domain.Report, error) {
	return a.store.ListReports()
}

// OpenReportFile streams the report file. The caller must close it.
func (a *App) OpenReportFile(ctx context.Context, id string) (io.ReadCloser, string, error) {
	report, ok, err := a.store.GetReport(id)
	if err != nil {
		return nil, "", fmt.Errorf("fetch report: %w", err)
	}
	if !ok {
		return nil, "", ErrNotFound
	}
	if report.FileKey == "" {
		return nil, "", ErrNotFound
	}
	rc, err := a.objects.Get(ctx, report.FileKey)
	if err != nil {
		return nil, "", fmt.Errorf("open report file: %w", err)
	}
	return rc, report.FileType, nil
}

// DeleteReport removes a report and its stored file.
func (a *App) DeleteReport(ctx context.Context, id string) error {
	report, ok, err := a.store.GetReport(id)
	if err != nil {
		return fmt.Errorf("fetch report: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	if report.FileKey != "" {
		if err := a.objects.Delete(ctx, report.FileKey); err != nil {
			return fmt.Errorf("delete report file: %w", err)
		}
	}
	return a.store.DeleteReport(id)
}
