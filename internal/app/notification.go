package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eliterentals/internal/util"
	"eliterentals/pkg/domain"
	"eliterentals/pkg/notify"
)

// CreateNotification stores an in-app notification for one user and attempts
// a matching push.
func (a *App) CreateNotification(ctx context.Context, userID, text string, data map[string]string) (domain.Notification, error) {
	if userID == "" || strings.TrimSpace(text) == "" {
		return domain.Notification{}, fmt.Errorf("%w: userId and message required", ErrValidation)
	}
	user, ok, err := a.store.GetUser(userID)
	if err != nil {
		return domain.Notification{}, fmt.Errorf("fetch user: %w", err)
	}
	if !ok {
		return domain.Notification{}, ErrNotFound
	}
	n := domain.Notification{
		ID:        util.NewID(),
		UserID:    userID,
		Text:      text,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
	if err := a.store.CreateNotification(n); err != nil {
		return domain.Notification{}, fmt.Errorf("create notification: %w", err)
	}
	notify.TryPush(ctx, a.push, user.FCMToken, "Elite Rentals", text, data)
	return n, nil
}

// BroadcastNotification stores a notification for every user matching the
// role (all users when empty) and pushes to those with device tokens.
func (a *App) BroadcastNotification(ctx context.Context, text string, targetRole domain.UserRole) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, fmt.Errorf("%w: message required", ErrValidation)
	}
	var (
		recipients []domain.User
		err        error
	)
	if targetRole == "" {
		recipients, err = a.store.ListUsers()
	} else {
		recipients, err = a.store.ListUsersByRoles(targetRole)
	}
	if err != nil {
		return 0, fmt.Errorf("list recipients: %w", err)
	}
	data := map[string]string{"type": notify.TypeAnnouncement}
	count := 0
	for _, user := range recipients {
		n := domain.Notification{
			ID:        util.NewID(),
			UserID:    user.ID,
			Text:      text,
			Data:      data,
			Timestamp: time.Now().UTC(),
		}
		if err := a.store.CreateNotification(n); err != nil {
			return count, fmt.Errorf("create notification: %w", err)
		}
		count++
		notify.TryPush(ctx, a.push, user.FCMToken, "Elite Rentals", text, data)
	}
	return count, nil
}

// ListNotifications returns a user's in-app notifications, newest first.
func (a *App) ListNotifications(userID string) ([]domain.Notification, error) {
	return a.store.ListNotificationsByUser(userID)
}

// MarkNotificationRead flags a notification as read.
func (a *App) MarkNotificationRead(id string) error {
	return a.store.MarkNotificationRead(id)
}
