// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"errors"

	"github.com/louieddxu2/BoardGameScorePad-sub001/schema"
)

// ErrIssuesFound signals that a template check reported at least one broken
// auto column. Commands map it to a nonzero exit without an extra message.
var ErrIssuesFound = errors.New("template check found issues")

// StoreManager defines the interface for managing persistence stores.
// This allows the store layer to be mocked for testing.
type StoreManager interface {
	GetTemplateStore() TemplateStore
	GetSessionStore() SessionStore
}

// TemplateStore defines the interface for template persistence.
type TemplateStore interface {
	Get(ctx context.Context, templateID string) (schema.TemplateRecord, error)
	Put(ctx context.Context, record schema.TemplateRecord) error
	Delete(ctx context.Context, templateID string) error
	List(ctx context.Context, limit int) ([]schema.TemplateRecord, error)
	GetStatus(ctx context.Context) (schema.StoreStatus, error)
	Close() error
}

// SessionStore defines the interface for session persistence.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (schema.SessionRecord, error)
	Put(ctx context.Context, record schema.SessionRecord) error
	Delete(ctx context.Context, sessionID string) error
	List(ctx context.Context, limit int) ([]schema.SessionRecord, error)
	GetStatus(ctx context.Context) (schema.StoreStatus, error)
	Close() error
}
