package store

import (
	"context"
	"errors"
	"time"

	"github.com/freshfold/freshfold-server/internal/core"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// User represents a platform account. Kind matches the participant taxonomy
// used on the wire.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	Kind         core.Kind
	PasswordHash string
	CreatedAt    time.Time
}

// UserStore handles account persistence.
type UserStore interface {
	// CreateUser persists a new user and assigns its ID.
	CreateUser(ctx context.Context, u *User) error

	// GetUserByEmail retrieves a user by email.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id string) (*User, error)
}

// MessageStore handles chat message persistence. It satisfies the core's
// durable-store collaborator contract.
type MessageStore interface {
	// PersistMessage writes a message and returns its durable ID.
	PersistMessage(ctx context.Context, msg core.ChatMessage) (string, error)

	// LoadRecentMessages returns up to limit messages for the room, oldest first.
	LoadRecentMessages(ctx context.Context, room string, limit int) ([]core.ChatMessage, error)
}

// Store aggregates all storage interfaces.
type Store interface {
	UserStore
	MessageStore

	// Close releases the underlying database handle.
	Close() error
}
