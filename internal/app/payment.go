package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"eliterentals/internal/util"
	"eliterentals/pkg/domain"
	"eliterentals/pkg/notify"
)

// CreatePayment records a rent payment submitted by a tenant.
func (a *App) CreatePayment(p domain.Payment) (domain.Payment, error) {
	if p.TenantID == "" {
		return domain.Payment{}, fmt.Errorf("%w: tenantId required", ErrValidation)
	}
	if p.Amount <= 0 {
		return domain.Payment{}, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	p.ID = util.NewID()
	if p.Status == "" {
		p.Status = domain.PaymentPending
	}
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	if err := a.store.CreatePayment(p); err != nil {
		return domain.Payment{}, fmt.Errorf("create payment: %w", err)
	}
	return p, nil
}

// GetPayment returns a single payment.
func (a *App) GetPayment(id string) (domain.Payment, error) {
	p, ok, err := a.store.GetPayment(id)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("fetch payment: %w", err)
	}
	if !ok {
		return domain.Payment{}, ErrNotFound
	}
	return p, nil
}

// ListPayments returns every payment on record.
func (a *App) ListPayments() ([]domain.Payment, error) {
	return a.store.ListPayments()
}

// ListPaymentsByTenant returns one tenant's payments.
func (a *App) ListPaymentsByTenant(tenantID string) ([]domain.Payment, error) {
	return a.store.ListPaymentsByTenant(tenantID)
}

// UpdatePaymentStatus transitions a payment's status. When the new status
// equals the stored one the call succeeds without persisting or notifying.
// On an actual change the tenant is pushed a best-effort status update.
func (a *App) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (domain.Payment, error) {
	switch status {
	case domain.PaymentPending, domain.PaymentPaid, domain.PaymentOverdue, domain.PaymentRejected:
	default:
		return domain.Payment{}, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	payment, ok, err := a.store.GetPayment(id)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("fetch payment: %w", err)
	}
	if !ok {
		return domain.Payment{}, ErrNotFound
	}
	if payment.Status == status {
		return payment, nil
	}
	if err := a.store.SetPaymentStatus(id, status); err != nil {
		return domain.Payment{}, fmt.Errorf("update payment status: %w", err)
	}
	payment.Status = status

	tenant, ok, err := a.store.GetUser(payment.TenantID)
	if err == nil && ok {
		notify.TryPush(ctx, a.push, tenant.FCMToken,
			"Payment update",
			fmt.Sprintf("Your payment of R%.2f is now %s.", payment.Amount, status),
			map[string]string{
				"type":      notify.TypePaymentStatusUpdate,
				"paymentId": payment.ID,
				"tenantId":  payment.TenantID,
				"status":    string(status),
			})
	}
	return payment, nil
}

// AttachPaymentProof stores the proof-of-payment blob.
func (a *App) AttachPaymentProof(ctx context.Context, paymentID string, r io.Reader, size int64, contentType string) (domain.Payment, error) {
	payment, ok, err := a.store.GetPayment(paymentID)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("fetch payment: %w", err)
	}
	if !ok {
		return domain.Payment{}, ErrNotFound
	}
	key := fmt.Sprintf("payment-proofs/%s", paymentID)
	if err := a.objects.Put(ctx, key, r, size, contentType); err != nil {
		return domain.Payment{}, fmt.Errorf("store proof: %w", err)
	}
	payment.ProofKey = key
	payment.ProofType = contentType
	if err := a.store.UpdatePayment(payment); err != nil {
		return domain.Payment{}, fmt.Errorf("record proof: %w", err)
	}
	return payment, nil
}

// OpenPaymentProof streams the proof blob. The caller must close it.
func (a *App) OpenPaymentProof(ctx context.Context, paymentID string) (io.ReadCloser, string, error) {
	payment, ok, err := a.store.GetPayment(paymentID)
	if err != nil {
		return nil, "", fmt.Errorf("fetch payment: %w", err)
	}
	if !ok {
		return nil, "", ErrNotFound
	}
	if payment.ProofKey == "" {
		return nil, "", ErrNotFound
	}
	rc, err := a.objects.Get(ctx, payment.ProofKey)
	if err != nil {
		return nil, "", fmt.Errorf("open proof: %w", err)
	}
	return rc, payment.ProofType, nil
}
