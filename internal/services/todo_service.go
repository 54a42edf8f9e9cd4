package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-crud/internal/models"
	"github.com/adanyl0v/go-todo-crud/internal/storage"
)

type todoServiceImpl struct {
	logger zerolog.Logger
	store  storage.TodoStore
}

func NewTodoService(
	logger zerolog.Logger,
	store storage.TodoStore,
) TodoService {
	return &todoServiceImpl{
		logger: logger,
		store:  store,
	}
}

// ParseTodoID parses a base-10 todo id. It returns an error wrapping
// ErrInvalidTodoID for anything but a positive integer.
func ParseTodoID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTodoID, raw)
	}
	if id < 1 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidTodoID, id)
	}
	return id, nil
}

func (s *todoServiceImpl) ListTodos(ctx context.Context) ([]*models.Todo, error) {
	todos, err := s.store.FindMany(ctx)
	if err != nil {
		s.failureEvent(err).
			Err(err).
			Msg("failed to list todos")
		return nil, translateStorageError(err)
	}
	if todos == nil {
		todos = make([]*models.Todo, 0)
	}

	s.logger.Info().
		Int("count", len(todos)).
		Msg("listed todos")
	return todos, nil
}

func (s *todoServiceImpl) GetTodo(ctx context.Context, id int64) (*models.Todo, error) {
	if id < 1 {
		return nil, ErrInvalidTodoID
	}

	todo, err := s.store.FindUnique(ctx, id)
	if err != nil {
		s.failureEvent(err).
			Err(err).
			Int64("todo_id", id).
			Msg("failed to get todo")
		return nil, translateStorageError(err)
	}

	s.logger.Info().
		Int64("todo_id", id).
		Msg("got todo")
	return todo, nil
}

func (s *todoServiceImpl) CreateTodo(ctx context.Context, params CreateTodoParams) (*models.Todo, error) {
	todo, err := s.store.Create(ctx, &models.Todo{
		Title:   params.Title,
		Content: params.Content,
		Done:    false,
	})
	if err != nil {
		s.failureEvent(err).
			Err(err).
			Msg("failed to create todo")
		return nil, translateStorageError(err)
	}

	s.logger.Info().
		Int64("todo_id", todo.ID).
		Msg("added new todo")
	return todo, nil
}

func (s *todoServiceImpl) SetTodoDone(ctx context.Context, params SetTodoDoneParams) (*models.Todo, error) {
	if params.ID < 1 {
		return nil, ErrInvalidTodoID
	}

	todo, err := s.store.UpdateDone(ctx, params.ID, params.Done)
	if err != nil {
		s.failureEvent(err).
			Err(err).
			Int64("todo_id", params.ID).
			Msg("failed to update todo")
		return nil, translateStorageError(err)
	}

	s.logger.Info().
		Int64("todo_id", todo.ID).
		Bool("done", todo.Done).
		Msg("updated todo")
	return todo, nil
}

func (s *todoServiceImpl) DeleteTodo(ctx context.Context, id int64) error {
	if id < 1 {
		return ErrInvalidTodoID
	}

	_, err := s.store.Delete(ctx, id)
	if err != nil {
		s.failureEvent(err).
			Err(err).
			Int64("todo_id", id).
			Msg("failed to delete todo")
		return translateStorageError(err)
	}

	s.logger.Info().
		Int64("todo_id", id).
		Msg("deleted todo")
	return nil
}

func (s *todoServiceImpl) Ping(ctx context.Context) error {
	err := s.store.Ping(ctx)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Msg("storage ping failed")
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return nil
}

// failureEvent picks debug level for a missing row and error
// level for everything else.
func (s *todoServiceImpl) failureEvent(err error) *zerolog.Event {
	if errors.Is(err, storage.ErrNotFound) {
		return s.logger.Debug()
	}
	return s.logger.Error()
}

func translateStorageError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return ErrTodoNotFound
	case errors.Is(err, storage.ErrUnavailable):
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	default:
		return err
	}
}
