package app

import (
	"fmt"

	"eliterentals/pkg/notify"
	"eliterentals/pkg/storage"
	"eliterentals/pkg/store"
)

// Config holds runtime configuration for the core application.
type Config struct {
	DatabaseURL string

	// Store overrides the database-backed store (used by tests).
	Store store.Store

	// Push and Email are the notification dispatchers. Either may be nil, in
	// which case the corresponding notifications are silently skipped.
	Push  notify.PushSender
	Email notify.EmailSender

	// Objects holds binary attachments. Nil falls back to an in-memory store.
	Objects storage.ObjectStore
}

// App is the core application service wiring storage, object storage and the
// notification dispatchers together. All workflow rules live on its methods;
// the HTTP layer only decodes, authorizes and encodes.
type App struct {
	store   store.Store
	push    notify.PushSender
	email   notify.EmailSender
	objects storage.ObjectStore
}

// New constructs the application.
func New(cfg Config) (*App, error) {
	dataStore := cfg.Store
	if dataStore == nil {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("database URL required")
		}
		var err error
		dataStore, err = store.NewGormStore(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("init postgres store: %w", err)
		}
	}
	objects := cfg.Objects
	if objects == nil {
		objects = storage.NewMemoryObjectStore()
	}
	return &App{
		store:   dataStore,
		push:    cfg.Push,
		email:   cfg.Email,
		objects: objects,
	}, nil
}

// Store exposes the underlying store for the scheduled jobs.
func (a *App) Store() store.Store {
	return a.store
}
