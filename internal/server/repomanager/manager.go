// Package repomanager wires repository implementations to their backing
// store: a seeded in-memory set for mock mode, or Postgres (pgx) with goose
// migrations.
package repomanager

import (
	"database/sql"

	"github.com/dmitrijs2005/steptrack/internal/server/steps"
	"github.com/dmitrijs2005/steptrack/internal/server/users"
)

type RepositoryManager interface {
	// Conn returns the underlying DB handle, nil for the in-memory backend.
	Conn() *sql.DB
	Users() users.Repository
	Steps() steps.Repository
}
