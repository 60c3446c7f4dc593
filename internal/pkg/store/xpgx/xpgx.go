package xpgx

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of *pgxpool.Pool the store needs; pgxmock pools satisfy it.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Pool runs squirrel builders and scans rows into db-tagged structs.
type Pool interface {
	Querier
	Execx(ctx context.Context, query sq.Sqlizer) (pgconn.CommandTag, error)
	Getx(ctx context.Context, dst any, query sq.Sqlizer) error
	Selectx(ctx context.Context, dst any, query sq.Sqlizer) error
	// InTx runs fn in a transaction, committed when fn returns nil and rolled back otherwise.
	InTx(ctx context.Context, fn func(tx Pool) error) error
}

type pool struct {
	Querier
}

func Wrap(q Querier) Pool {
	return &pool{Querier: q}
}

func Connect(ctx context.Context, databaseURL string) (Pool, func(), error) {
	p, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err = p.Ping(ctx); err != nil {
		p.Close()
		return nil, nil, fmt.Errorf("pool.Ping: %w", err)
	}
	return Wrap(p), p.Close, nil
}

func (p *pool) Execx(ctx context.Context, query sq.Sqlizer) (pgconn.CommandTag, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("query.ToSql: %w", err)
	}
	return p.Exec(ctx, sql, args...)
}

// Getx scans exactly one row into dst, a pointer to a struct. pgx.ErrNoRows is
// returned when the query yields nothing.
func (p *pool) Getx(ctx context.Context, dst any, query sq.Sqlizer) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("query.ToSql: %w", err)
	}

	rows, err := p.Query(ctx, sql, args...)
	if err != nil {
		return err
	}

	return collectOne(rows, dst)
}

// Selectx scans all rows into dst, a pointer to a slice of structs or struct pointers.
func (p *pool) Selectx(ctx context.Context, dst any, query sq.Sqlizer) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("query.ToSql: %w", err)
	}

	rows, err := p.Query(ctx, sql, args...)
	if err != nil {
		return err
	}

	return collectAll(rows, dst)
}

func (p *pool) InTx(ctx context.Context, fn func(tx Pool) error) error {
	tx, err := p.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pool.Begin: %w", err)
	}

	if err = fn(Wrap(tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("%w (tx.Rollback: %s)", err, rbErr.Error())
		}
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("tx.Commit: %w", err)
	}
	return nil
}
