package http

import (
	"github.com/nats-io/nats.go"

	"github.com/samirrijal/meetpoint/internal/adapters/postgres"
	"github.com/samirrijal/meetpoint/internal/adapters/valkey"
	"github.com/samirrijal/meetpoint/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Midpoint *usecases.MidpointService
	History  *usecases.HistoryService
	NATS     *nats.Conn
	DB       *postgres.DB
	Cache    *valkey.Cache
}
