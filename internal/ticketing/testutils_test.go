package ticketing

import (
	"io"
	"log/slog"

	"github.com/metinatakli/ticketmaster/internal/mocks"
	"github.com/metinatakli/ticketmaster/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var bookingColumns = []string{"bid", "status", "bdatetime", "seats", "sid", "email"}

func newTestService(gateway *mocks.MockGateway, identity *mocks.MockIdentityManager) *Service {
	return NewService(
		gateway,
		identity,
		validator.NewValidator(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

// withArgs matches the variadic arguments of a gateway call.
func withArgs(want ...any) any {
	return mock.MatchedBy(func(got []any) bool {
		if len(got) != len(want) {
			return false
		}

		for i := range want {
			if !assert.ObjectsAreEqual(want[i], got[i]) {
				return false
			}
		}

		return true
	})
}
