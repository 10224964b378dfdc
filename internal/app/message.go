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

const messagePreviewLength = 60

// SendDirectMessage persists a direct message and pushes a preview to the
// receiver. Both participants must resolve before anything is written.
func (a *App) SendDirectMessage(ctx context.Context, senderID, receiverID, text string) (domain.Message, error) {
	if senderID == "" || receiverID == "" {
		return domain.Message{}, fmt.Errorf("%w: senderId and receiverId required", ErrValidation)
	}
	if strings.TrimSpace(text) == "" {
		return domain.Message{}, fmt.Errorf("%w: message text required", ErrValidation)
	}
	if _, ok, err := a.store.GetUser(senderID); err != nil {
		return domain.Message{}, fmt.Errorf("fetch sender: %w", err)
	} else if !ok {
		return domain.Message{}, ErrNotFound
	}
	receiver, ok, err := a.store.GetUser(receiverID)
	if err != nil {
		return domain.Message{}, fmt.Errorf("fetch receiver: %w", err)
	}
	if !ok {
		return domain.Message{}, ErrNotFound
	}
	msg := domain.Message{
		ID:         util.NewID(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		Timestamp:  time.Now().UTC(),
	}
	if err := a.store.CreateMessage(msg); err != nil {
		return domain.Message{}, fmt.Errorf("create message: %w", err)
	}
	notify.TryPush(ctx, a.push, receiver.FCMToken,
		"New message",
		previewText(text),
		map[string]string{
			"type":      notify.TypeMessage,
			"messageId": msg.ID,
			"senderId":  senderID,
		})
	return msg, nil
}

// SendBroadcast persists a broadcast message and fans out a push to every
// matching user with a device token. Per-recipient failures never abort the
// fan-out.
func (a *App) SendBroadcast(ctx context.Context, senderID, text string, targetRole domain.UserRole) (domain.Message, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Message{}, fmt.Errorf("%w: message text required", ErrValidation)
	}
	msg := domain.Message{
		ID:          util.NewID(),
		SenderID:    senderID,
		Text:        text,
		Timestamp:   time.Now().UTC(),
		IsBroadcast: true,
		TargetRole:  targetRole,
	}
	if err := a.store.CreateMessage(msg); err != nil {
		return domain.Message{}, fmt.Errorf("create broadcast: %w", err)
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
		return domain.Message{}, fmt.Errorf("list recipients: %w", err)
	}
	for _, user := range recipients {
		if user.ID == senderID || user.FCMToken == "" {
			continue
		}
		notify.TryPush(ctx, a.push, user.FCMToken,
			"Announcement",
			previewText(text),
			map[string]string{
				"type":      notify.TypeAnnouncement,
				"messageId": msg.ID,
			})
	}
	return msg, nil
}

// GetMessage returns a single message.
func (a *App) GetMessage(id string) (domain.Message, error) {
	msg, ok, err := a.store.GetMessage(id)
	if err != nil {
		return domain.Message{}, fmt.Errorf("fetch message: %w", err)
	}
	if !ok {
		return domain.Message{}, ErrNotFound
	}
	return msg, nil
}

// ListConversation returns the direct messages between two users, oldest first.
func (a *App) ListConversation(userA, userB string) ([]domain.Message, error) {
	return a.store.ListConversation(userA, userB)
}

// ListInbox returns the direct messages received by a user, newest first.
func (a *App) ListInbox(userID string) ([]domain.Message, error) {
	return a.store.ListInbox(userID)
}

// ListSent returns the direct messages sent by a user, newest first.
func (a *App) ListSent(userID string) ([]domain.Message, error) {
	return a.store.ListSent(userID)
}

// GetAnnouncements returns the broadcasts visible to a user: unscoped ones
// plus those targeted at the user's role, newest first.
func (a *App) GetAnnouncements(userID string) ([]domain.Message, error) {
	user, ok, err := a.store.GetUser(userID)
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	if !ok {
		return nil, ErrNotFound
	}
	return a.store.ListBroadcasts(user.Role)
}

// ArchiveMessage soft-deletes a message.
func (a *App) ArchiveMessage(id string) (domain.Message, error) {
	msg, ok, err := a.store.GetMessage(id)
	if err != nil {
		return domain.Message{}, fmt.Errorf("fetch message: %w", err)
	}
	if !ok {
		return domain.Message{}, ErrNotFound
	}
	now := time.Now().UTC()
	msg.IsArchived = true
	msg.ArchivedAt = &now
	if err := a.store.UpdateMessage(msg); err != nil {
		return domain.Message{}, fmt.Errorf("archive message: %w", err)
	}
	return msg, nil
}

// RestoreMessage reverses an archive.
func (a *App) RestoreMessage(id string) (domain.Message, error) {
	msg, ok, err := a.store.GetMessage(id)
	if err != nil {
		return domain.Message{}, fmt.Errorf("fetch message: %w", err)
	}
	if !ok {
		return domain.Message{}, ErrNotFound
	}
	msg.IsArchived = false
	msg.ArchivedAt = nil
	if err := a.store.UpdateMessage(msg); err != nil {
		return domain.Message{}, fmt.Errorf("restore message: %w", err)
	}
	return msg, nil
}

// previewText truncates message text to the push preview length.
func previewText(text string) string {
	runes := []rune(text)
	if len(runes) <= messagePreviewLength {
		return text
	}
	return string(runes[:messagePreviewLength]) + "…"
}
