package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/adanyl0v/go-todo-crud/internal/models"
)

var (
	ErrTodoNotFound       = errors.New("todo not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrStorageUnavailable = errors.New("storage unavailable")

	ErrInvalidTodoID = fmt.Errorf("%w: invalid todo id", ErrInvalidInput)
)

type TodoService interface {
	// ListTodos returns every todo. The result is never nil.
	ListTodos(ctx context.Context) ([]*models.Todo, error)

	// GetTodo returns the todo with the given id.
	//
	// It returns ErrInvalidTodoID if the id is not positive
	// or ErrTodoNotFound if there is no such todo.
	GetTodo(ctx context.Context, id int64) (*models.Todo, error)

	// CreateTodo stores a new todo. The created todo is
	// never done, whatever the caller passes.
	CreateTodo(ctx context.Context, params CreateTodoParams) (*models.Todo, error)

	// SetTodoDone updates the done flag of the todo.
	//
	// It returns ErrInvalidTodoID if the id is not positive
	// or ErrTodoNotFound if there is no such todo.
	SetTodoDone(ctx context.Context, params SetTodoDoneParams) (*models.Todo, error)

	// DeleteTodo deletes the todo with the given id.
	//
	// It returns ErrInvalidTodoID if the id is not positive
	// or ErrTodoNotFound if there is no such todo.
	DeleteTodo(ctx context.Context, id int64) error

	// Ping reports ErrStorageUnavailable if the store is down.
	Ping(ctx context.Context) error
}

type CreateTodoParams struct {
	Title   string
	Content string
}

type SetTodoDoneParams struct {
	ID   int64
	Done bool
}
