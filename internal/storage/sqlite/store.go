package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-crud/internal/config"
	"github.com/adanyl0v/go-todo-crud/internal/models"
	"github.com/adanyl0v/go-todo-crud/internal/storage"
)

const createTodosTableQuery = `
CREATE TABLE IF NOT EXISTS todos (
    id      INTEGER PRIMARY KEY AUTOINCREMENT,
    title   TEXT    NOT NULL,
    content TEXT    NOT NULL,
    done    INTEGER NOT NULL DEFAULT 0
)
`

type Store struct {
	logger zerolog.Logger
	sqlDB  *sql.DB
}

// Open opens the database file at cfg.Path and makes sure the todos
// table exists.
func Open(ctx context.Context, logger zerolog.Logger, cfg config.SQLiteConfig) (*Store, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	dsn := filepath.Clean(cfg.Path) +
		"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	err = sqlDB.PingContext(ctx)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", classifyError(err))
	}

	_, err = sqlDB.ExecContext(ctx, createTodosTableQuery)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to create todos table: %w", classifyError(err))
	}

	return &Store{
		logger: logger,
		sqlDB:  sqlDB,
	}, nil
}

func (s *Store) FindMany(ctx context.Context) ([]*models.Todo, error) {
	const selectTodosQuery = `
SELECT id,
       title,
       content,
       done
FROM todos
ORDER BY id
`
	rows, err := s.sqlDB.QueryContext(ctx, selectTodosQuery)
	if err != nil {
		s.logger.Debug().
			Err(err).
			Msg("failed to select todos")
		return nil, classifyError(err)
	}
	defer func() { _ = rows.Close() }()

	todos := make([]*models.Todo, 0)
	for rows.Next() {
		todo := new(models.Todo)
		err = rows.Scan(
			&todo.ID,
			&todo.Title,
			&todo.Content,
			&todo.Done,
		)
		if err != nil {
			s.logger.Debug().
				Err(err).
				Msg("failed to scan todo")
			return nil, classifyError(err)
		}
		todos = append(todos, todo)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Debug().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, classifyError(err)
	}
	s.logger.Debug().
		Int("count", len(todos)).
		Msg("selected todos")
	return todos, nil
}

func (s *Store) FindUnique(ctx context.Context, id int64) (*models.Todo, error) {
	const selectTodoByIDQuery = `
SELECT title,
       content,
       done
FROM todos
WHERE id = ?
`
	todo := &models.Todo{ID: id}
	err := s.sqlDB.QueryRowContext(
		ctx,
		selectTodoByIDQuery,
		id,
	).Scan(
		&todo.Title,
		&todo.Content,
		&todo.Done,
	)
	if err != nil {
		return nil, s.rowError(err, id, "failed to select todo")
	}
	s.logger.Debug().
		Int64("todo_id", id).
		Msg("selected todo")
	return todo, nil
}

func (s *Store) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	const insertTodoQuery = `
INSERT INTO todos (title,
                   content,
                   done)
VALUES (?, ?, ?)
RETURNING id
`
	created := &models.Todo{
		Title:   todo.Title,
		Content: todo.Content,
		Done:    todo.Done,
	}
	err := s.sqlDB.QueryRowContext(
		ctx,
		insertTodoQuery,
		created.Title,
		created.Content,
		created.Done,
	).Scan(&created.ID)
	if err != nil {
		s.logger.Debug().
			Err(err).
			Msg("failed to insert todo")
		return nil, classifyError(err)
	}
	s.logger.Debug().
		Int64("todo_id", created.ID).
		Msg("inserted todo")
	return created, nil
}

func (s *Store) UpdateDone(ctx context.Context, id int64, done bool) (*models.Todo, error) {
	const updateTodoDoneQuery = `
UPDATE todos
SET done = ?
WHERE id = ?
RETURNING title, content, done
`
	todo := &models.Todo{ID: id}
	err := s.sqlDB.QueryRowContext(
		ctx,
		updateTodoDoneQuery,
		done,
		id,
	).Scan(
		&todo.Title,
		&todo.Content,
		&todo.Done,
	)
	if err != nil {
		return nil, s.rowError(err, id, "failed to update todo")
	}
	s.logger.Debug().
		Int64("todo_id", id).
		Bool("done", todo.Done).
		Msg("updated todo")
	return todo, nil
}

func (s *Store) Delete(ctx context.Context, id int64) (*models.Todo, error) {
	const deleteTodoQuery = `
DELETE FROM todos
WHERE id = ?
RETURNING title, content, done
`
	todo := &models.Todo{ID: id}
	err := s.sqlDB.QueryRowContext(
		ctx,
		deleteTodoQuery,
		id,
	).Scan(
		&todo.Title,
		&todo.Content,
		&todo.Done,
	)
	if err != nil {
		return nil, s.rowError(err, id, "failed to delete todo")
	}
	s.logger.Debug().
		Int64("todo_id", id).
		Msg("deleted todo")
	return todo, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return classifyError(s.sqlDB.PingContext(ctx))
}

func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) rowError(err error, id int64, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.Debug().
			Int64("todo_id", id).
			Msg("todo not found")
		return storage.ErrNotFound
	}

	s.logger.Debug().
		Err(err).
		Int64("todo_id", id).
		Msg(msg)
	return classifyError(err)
}

var _ storage.TodoStore = (*Store)(nil)
