package mocks

import (
	"context"

	"github.com/metinatakli/ticketmaster/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockIdentityManager struct {
	mock.Mock
}

func (m *MockIdentityManager) Next(ctx context.Context, q domain.Querier, kind domain.IdentityKind) (int, error) {
	args := m.Called(ctx, q, kind)
	return args.Int(0), args.Error(1)
}

func (m *MockIdentityManager) Advance(kind domain.IdentityKind) {
	m.Called(kind)
}
