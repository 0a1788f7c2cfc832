package repomanager

import (
	"context"
	"database/sql"

	"zorgkaart/internal/dbx"
	"zorgkaart/internal/server/repositories/providers"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Providers(db dbx.DBTX) providers.Repository
}
