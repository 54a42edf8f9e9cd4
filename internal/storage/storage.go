package storage

import (
	"context"
	"errors"

	"github.com/adanyl0v/go-todo-crud/internal/models"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrUnavailable = errors.New("database unavailable")
)

// TodoStore is the persistence collaborator of the todo service.
// Implementations must be safe for concurrent use.
type TodoStore interface {
	// FindMany returns every todo ordered by id.
	FindMany(ctx context.Context) ([]*models.Todo, error)

	// FindUnique returns the todo with the given id or ErrNotFound.
	FindUnique(ctx context.Context, id int64) (*models.Todo, error)

	// Create inserts the todo and returns it with the assigned id.
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)

	// UpdateDone sets the done flag of the todo with the given id
	// and returns the updated row or ErrNotFound.
	UpdateDone(ctx context.Context, id int64, done bool) (*models.Todo, error)

	// Delete removes the todo with the given id and returns the
	// removed row or ErrNotFound.
	Delete(ctx context.Context, id int64) (*models.Todo, error)

	Ping(ctx context.Context) error
	Close() error
}
