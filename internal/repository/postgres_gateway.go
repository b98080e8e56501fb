package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/ticketmaster/internal/domain"
)

// pgxQuerier is the part of the pgx API shared by *pgxpool.Pool and pgx.Tx.
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresGateway is the single point of access to PostgreSQL. It is used
// from one goroutine at a time; the pool is sized to one connection unless
// configured otherwise.
type PostgresGateway struct {
	db        *pgxpool.Pool
	querier   statementRunner
	closeOnce sync.Once
}

func NewPostgresGateway(db *pgxpool.Pool) *PostgresGateway {
	return &PostgresGateway{
		db:      db,
		querier: statementRunner{q: db},
	}
}

func (p *PostgresGateway) ExecuteEffect(ctx context.Context, sql string, args ...any) (int64, error) {
	return p.querier.ExecuteEffect(ctx, sql, args...)
}

func (p *PostgresGateway) ExecuteRows(ctx context.Context, sql string, args ...any) (*domain.ResultSet, error) {
	return p.querier.ExecuteRows(ctx, sql, args...)
}

func (p *PostgresGateway) ExecuteCount(ctx context.Context, sql string, args ...any) (int, error) {
	return p.querier.ExecuteCount(ctx, sql, args...)
}

func (p *PostgresGateway) RunInTx(ctx context.Context, opts domain.TxOptions, fn func(q domain.Querier) error) error {
	return runInTx(ctx, p.db, toTxOptions(opts), func(tx pgx.Tx) error {
		return fn(statementRunner{q: tx})
	})
}

// Close releases the pool. Calling it more than once is safe.
func (p *PostgresGateway) Close() {
	p.closeOnce.Do(p.db.Close)
}

func toTxOptions(opts domain.TxOptions) pgx.TxOptions {
	var txOptions pgx.TxOptions
	if opts.Serializable {
		txOptions.IsoLevel = pgx.Serializable
	}

	return txOptions
}

func runInTx(ctx context.Context, db *pgxpool.Pool, txOptions pgx.TxOptions, fn func(tx pgx.Tx) error) error {
	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return toStorageError(err)
	}

	err = fn(tx)
	if err == nil {
		return toStorageError(tx.Commit(ctx))
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}

type statementRunner struct {
	q pgxQuerier
}

func (s statementRunner) ExecuteEffect(ctx context.Context, sql string, args ...any) (int64, error) {
	tag, err := s.q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, toStorageError(err)
	}

	return tag.RowsAffected(), nil
}

// ExecuteRows uses the simple query protocol so PostgreSQL returns every
// column in its text format, which is kept verbatim.
func (s statementRunner) ExecuteRows(ctx context.Context, sql string, args ...any) (*domain.ResultSet, error) {
	queryArgs := make([]any, 0, len(args)+1)
	queryArgs = append(queryArgs, pgx.QueryExecModeSimpleProtocol)
	queryArgs = append(queryArgs, args...)

	rows, err := s.q.Query(ctx, sql, queryArgs...)
	if err != nil {
		return nil, toStorageError(err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	result := &domain.ResultSet{
		Columns: make([]string, len(fields)),
		Records: make([]domain.Record, 0),
	}

	for i, fd := range fields {
		result.Columns[i] = fd.Name
	}

	for rows.Next() {
		raw := rows.RawValues()
		record := make(domain.Record, len(fields))

		for i, col := range result.Columns {
			if raw[i] == nil {
				record[col] = domain.NullValue
				continue
			}

			record[col] = string(raw[i])
		}

		result.Records = append(result.Records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, toStorageError(err)
	}

	return result, nil
}

func (s statementRunner) ExecuteCount(ctx context.Context, sql string, args ...any) (int, error) {
	rows, err := s.q.Query(ctx, sql, args...)
	if err != nil {
		return 0, toStorageError(err)
	}
	defer rows.Close()

	count := 0
	if rows.Next() {
		count++
	}

	if err = rows.Err(); err != nil {
		return 0, toStorageError(err)
	}

	return count, nil
}
