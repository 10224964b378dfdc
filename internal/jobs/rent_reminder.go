package jobs

import (
	"context"
	"fmt"
	"time"

	"eliterentals/pkg/domain"
	"eliterentals/pkg/notify"
	"eliterentals/pkg/store"
)

// RentReminderJob reminds every tenant with a device token that rent is due
// at month end. The trigger day is exactly three days before the last
// calendar day of the current month, so the reminder fires once per month.
type RentReminderJob struct {
	Store store.Store
	Push  notify.PushSender
	Email notify.EmailSender
}

func (j *RentReminderJob) Name() string { return "rent-reminder" }

func (j *RentReminderJob) RunOnce(ctx context.Context, now time.Time) error {
	now = now.UTC()
	lastDay := lastDayOfMonth(now)
	if now.Day() != lastDay-3 {
		return nil
	}
	tenants, err := j.Store.ListUsersByRoles(domain.RoleTenant)
	if err != nil {
		return fmt.Errorf("list tenants: %w", err)
	}
	dueDate := time.Date(now.Year(), now.Month(), lastDay, 0, 0, 0, 0, time.UTC)
	title := "Rent due soon"
	body := fmt.Sprintf("Your rent is due on %s. Please make sure your payment goes through in time.", dueDate.Format("2 January"))
	for _, tenant := range tenants {
		if tenant.FCMToken == "" {
			continue
		}
		notify.TryPush(ctx, j.Push, tenant.FCMToken, title, body, map[string]string{
			"type": notify.TypeRentDue,
		})
		notify.TryEmail(ctx, j.Email, tenant.Email, title, notify.WrapEmail(title, "<p>"+body+"</p>"))
	}
	return nil
}

// lastDayOfMonth returns the day number of the final day of t's month.
func lastDayOfMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
