package mocks

import (
	"context"
	"strings"

	"github.com/metinatakli/ticketmaster/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockGateway is a testify mock of domain.Gateway. RunInTx records the call
// and then runs fn against the mock itself, so statements issued inside a
// transaction are asserted like any other call.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) ExecuteEffect(ctx context.Context, sql string, args ...any) (int64, error) {
	ret := m.Called(ctx, sql, args)
	return ret.Get(0).(int64), ret.Error(1)
}

func (m *MockGateway) ExecuteRows(ctx context.Context, sql string, args ...any) (*domain.ResultSet, error) {
	ret := m.Called(ctx, sql, args)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*domain.ResultSet), ret.Error(1)
}

func (m *MockGateway) ExecuteCount(ctx context.Context, sql string, args ...any) (int, error) {
	ret := m.Called(ctx, sql, args)
	return ret.Int(0), ret.Error(1)
}

func (m *MockGateway) RunInTx(ctx context.Context, opts domain.TxOptions, fn func(q domain.Querier) error) error {
	ret := m.Called(ctx, opts)
	if err := ret.Error(0); err != nil {
		return err
	}
	return fn(m)
}

func (m *MockGateway) Close() {
	m.Called()
}

// SQLContaining matches a statement containing fragment.
func SQLContaining(fragment string) any {
	return mock.MatchedBy(func(sql string) bool {
		return strings.Contains(sql, fragment)
	})
}

// Rows builds a ResultSet from a header and rows of values in column order.
func Rows(columns []string, values ...[]string) *domain.ResultSet {
	rs := &domain.ResultSet{Columns: columns, Records: make([]domain.Record, 0, len(values))}

	for _, row := range values {
		record := make(domain.Record, len(columns))
		for i, col := range columns {
			record[col] = row[i]
		}
		rs.Records = append(rs.Records, record)
	}

	return rs
}
