package jobs

import (
	"context"
	"fmt"
	"time"

	"eliterentals/pkg/notify"
	"eliterentals/pkg/store"
)

// LeaseExpiryJob reminds tenants as their lease end date approaches. A
// reminder fires when the lease has exactly 14, 7 or 0 whole days remaining;
// the comparison is day-granularity equality, so the daily cadence yields one
// reminder per tier.
type LeaseExpiryJob struct {
	Store store.Store
	Push  notify.PushSender
	Email notify.EmailSender
}

func (j *LeaseExpiryJob) Name() string { return "lease-expiry" }

func (j *LeaseExpiryJob) RunOnce(ctx context.Context, now time.Time) error {
	leases, err := j.Store.ListLeases()
	if err != nil {
		return fmt.Errorf("list leases: %w", err)
	}
	for _, lease := range leases {
		daysLeft := daysBetween(now, lease.EndDate)
		var title, body string
		switch daysLeft {
		case 14:
			title = "Lease expiry reminder"
			body = "Your lease expires in two weeks. Please contact your property manager to discuss renewal."
		case 7:
			title = "Lease expires in one week"
			body = "Your lease expires in 7 days. Arrange renewal or move-out with your property manager."
		case 0:
			title = "Lease expires today"
			body = "Your lease expires today. Please contact your property manager urgently."
		default:
			continue
		}
		tenant, ok, err := j.Store.GetUser(lease.TenantID)
		if err != nil || !ok || tenant.FCMToken == "" {
			continue
		}
		notify.TryPush(ctx, j.Push, tenant.FCMToken, title, body, map[string]string{
			"type":    notify.TypeLeaseExpiry,
			"leaseId": lease.ID,
		})
		notify.TryEmail(ctx, j.Email, tenant.Email, title, notify.WrapEmail(title, "<p>"+body+"</p>"))
	}
	return nil
}

// daysBetween returns the whole-day difference between the calendar dates of
// from and to, ignoring the time of day.
func daysBetween(from, to time.Time) int {
	f := truncateToDate(from)
	t := truncateToDate(to)
	return int(t.Sub(f).Hours() / 24)
}

func truncateToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
