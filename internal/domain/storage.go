package domain

import (
	"context"
	"strconv"
)

// NullValue is how a SQL NULL is rendered inside a Record.
const NullValue = "null"

// Record is a single result row keyed by column name. Every value is the
// database's own text rendering of the column.
type Record map[string]string

// ResultSet is a fully materialized query result.
type ResultSet struct {
	Columns []string
	Records []Record
}

// Len returns the number of rows, which is the true row count.
func (r *ResultSet) Len() int {
	if r == nil {
		return 0
	}

	return len(r.Records)
}

// Values returns the i-th row in column order.
func (r *ResultSet) Values(i int) []string {
	values := make([]string, len(r.Columns))
	for j, col := range r.Columns {
		values[j] = r.Records[i][col]
	}

	return values
}

// Scalar returns the first column of the first row.
func (r *ResultSet) Scalar() (string, error) {
	if r.Len() == 0 || len(r.Columns) == 0 {
		return "", ErrRecordNotFound
	}

	return r.Records[0][r.Columns[0]], nil
}

// ScalarInt is Scalar parsed as an integer.
func (r *ResultSet) ScalarInt() (int, error) {
	v, err := r.Scalar()
	if err != nil {
		return 0, err
	}

	return strconv.Atoi(v)
}

// Querier runs statements against the relational store. All user supplied
// values must be passed as args and referenced as $n placeholders.
type Querier interface {
	// ExecuteEffect runs a statement that returns no rows and reports the
	// number of rows it affected.
	ExecuteEffect(ctx context.Context, sql string, args ...any) (int64, error)
	// ExecuteRows runs a query and materializes every row.
	ExecuteRows(ctx context.Context, sql string, args ...any) (*ResultSet, error)
	// ExecuteCount reports 1 when the query yields at least one row and 0
	// otherwise. It is an existence probe, not a row count.
	ExecuteCount(ctx context.Context, sql string, args ...any) (int, error)
}

type TxOptions struct {
	Serializable bool
}

// Gateway owns the connection to the relational store.
type Gateway interface {
	Querier
	// RunInTx runs fn inside a transaction which is committed when fn
	// returns nil and rolled back otherwise.
	RunInTx(ctx context.Context, opts TxOptions, fn func(q Querier) error) error
	Close()
}
