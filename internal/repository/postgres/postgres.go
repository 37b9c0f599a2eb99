package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/repository"

	_ "github.com/lib/pq"
)

// Querier is the subset of *sql.DB and *sql.Tx the repositories need, so the
// same repository code runs inside or outside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// WithTx runs fn with repositories bound to a single transaction.
func (s *Store) WithTx(ctx context.Context, fn func(tx repository.Tx) error) (err error) {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.DatabaseResult("tx.begin", err)
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := sqlTx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				logger.DatabaseResult("tx.rollback", rbErr)
			}
		}
	}()

	if err = fn(newRepos(sqlTx)); err != nil {
		return err
	}

	if err = sqlTx.Commit(); err != nil {
		logger.DatabaseResult("tx.commit", err)
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type repos struct {
	users    repository.UserRepository
	tools    repository.ToolRepository
	bookings repository.BookingRepository
	reviews  repository.ReviewRepository
}

func newRepos(q Querier) *repos {
	return &repos{
		users:    NewUserRepository(q),
		tools:    NewToolRepository(q),
		bookings: NewBookingRepository(q),
		reviews:  NewReviewRepository(q),
	}
}

func (r *repos) Users() repository.UserRepository       { return r.users }
func (r *repos) Tools() repository.ToolRepository       { return r.tools }
func (r *repos) Bookings() repository.BookingRepository { return r.bookings }
func (r *repos) Reviews() repository.ReviewRepository   { return r.reviews }

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
