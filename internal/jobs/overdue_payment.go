package jobs

import (
	"context"
	"fmt"
	"time"

	"eliterentals/pkg/domain"
	"eliterentals/pkg/notify"
	"eliterentals/pkg/store"
)

// overdueAfterDays is the grace period before escalation kicks in.
const overdueAfterDays = 14

// OverduePaymentJob escalates payments that are more than two weeks past
// their date and not yet Paid: the tenant is reminded, and every Admin and
// PropertyManager with a device token is alerted per overdue payment. Each
// notification attempt is isolated from the others.
type OverduePaymentJob struct {
	Store store.Store
	Push  notify.PushSender
	Email notify.EmailSender
}

func (j *OverduePaymentJob) Name() string { return "overdue-payment" }

func (j *OverduePaymentJob) RunOnce(ctx context.Context, now time.Time) error {
	cutoff := now.UTC().AddDate(0, 0, -overdueAfterDays)
	payments, err := j.Store.ListUnpaidPaymentsBefore(cutoff)
	if err != nil {
		return fmt.Errorf("list overdue payments: %w", err)
	}
	if len(payments) == 0 {
		return nil
	}
	managers, err := j.Store.ListUsersByRoles(domain.StaffRoles...)
	if err != nil {
		return fmt.Errorf("list managers: %w", err)
	}
	for _, payment := range payments {
		daysOverdue := daysBetween(payment.Date, now)
		j.notifyTenant(ctx, payment, daysOverdue)
		for _, manager := range managers {
			if manager.FCMToken == "" {
				continue
			}
			j.notifyManager(ctx, manager, payment, daysOverdue)
		}
	}
	return nil
}

func (j *OverduePaymentJob) notifyTenant(ctx context.Context, payment domain.Payment, daysOverdue int) {
	tenant, ok, err := j.Store.GetUser(payment.TenantID)
	if err != nil || !ok {
		return
	}
	title := "Payment overdue"
	body := fmt.Sprintf("Your payment of R%.2f is %d days overdue. Please settle it as soon as possible.", payment.Amount, daysOverdue)
	notify.TryPush(ctx, j.Push, tenant.FCMToken, title, body, map[string]string{
		"type":      notify.TypePaymentOverdue,
		"paymentId": payment.ID,
	})
	notify.TryEmail(ctx, j.Email, tenant.Email, title, notify.WrapEmail(title, "<p>"+body+"</p>"))
}

func (j *OverduePaymentJob) notifyManager(ctx context.Context, manager domain.User, payment domain.Payment, daysOverdue int) {
	title := "Overdue payment escalation"
	body := fmt.Sprintf("Payment %s (R%.2f) from tenant %s is %d days overdue.", payment.ID, payment.Amount, payment.TenantID, daysOverdue)
	notify.TryPush(ctx, j.Push, manager.FCMToken, title, body, map[string]string{
		"type":      notify.TypePaymentEscalation,
		"paymentId": payment.ID,
		"tenantId":  payment.TenantID,
	})
	notify.TryEmail(ctx, j.Email, manager.Email, title, notify.WrapEmail(title, "<p>"+body+"</p>"))
}
