package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-crud/internal/config"
	"github.com/adanyl0v/go-todo-crud/internal/models"
	"github.com/adanyl0v/go-todo-crud/internal/storage"
)

const createTodosTableQuery = `
CREATE TABLE IF NOT EXISTS todos (
    id      BIGSERIAL PRIMARY KEY,
    title   TEXT      NOT NULL,
    content TEXT      NOT NULL,
    done    BOOLEAN   NOT NULL DEFAULT FALSE
)
`

type Store struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func New(logger zerolog.Logger, pgPool *pgxpool.Pool) *Store {
	return &Store{
		logger: logger,
		pgPool: pgPool,
	}
}

// Open connects to postgres, pings it and makes sure the todos
// table exists.
func Open(ctx context.Context, logger zerolog.Logger, cfg config.PostgresConfig) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pgPool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()

	err = pgPool.Ping(pingCtx)
	if err != nil {
		pgPool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", classifyError(err))
	}

	_, err = pgPool.Exec(ctx, createTodosTableQuery)
	if err != nil {
		pgPool.Close()
		return nil, fmt.Errorf("failed to create todos table: %w", classifyError(err))
	}

	return New(logger, pgPool), nil
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
	rows, err := s.pgPool.Query(ctx, selectTodosQuery)
	if err != nil {
		s.logger.Debug().
			Err(err).
			Msg("failed to select todos")
		return nil, classifyError(err)
	}
	defer rows.Close()

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
WHERE id = $1
`
	todo := &models.Todo{ID: id}
	err := s.pgPool.QueryRow(
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
VALUES ($1, $2, $3)
RETURNING id
`
	created := &models.Todo{
		Title:   todo.Title,
		Content: todo.Content,
		Done:    todo.Done,
	}
	err := s.pgPool.QueryRow(
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
SET done = $1
WHERE id = $2
RETURNING title, content, done
`
	todo := &models.Todo{ID: id}
	err := s.pgPool.QueryRow(
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
WHERE id = $1
RETURNING title, content, done
`
	todo := &models.Todo{ID: id}
	err := s.pgPool.QueryRow(
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
	return classifyError(s.pgPool.Ping(ctx))
}

func (s *Store) Close() error {
	s.pgPool.Close()
	return nil
}

func (s *Store) rowError(err error, id int64, msg string) error {
	if errors.Is(err, pgx.ErrNoRows) {
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
