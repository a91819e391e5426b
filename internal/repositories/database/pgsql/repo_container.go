package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/kdverse/vidtube_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider builds all pgx-backed repositories over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:  newPgxUserRepository(dbPool),
		VideoRepo: newPgxVideoRepository(dbPool),
	}
}
