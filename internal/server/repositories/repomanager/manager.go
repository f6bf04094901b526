package repomanager

import (
	"context"
	"database/sql"

	"github.com/a-mean-h/recepie-api-app/internal/dbx"
	"github.com/a-mean-h/recepie-api-app/internal/server/repositories/authtokens"
	"github.com/a-mean-h/recepie-api-app/internal/server/repositories/recipes"
	"github.com/a-mean-h/recepie-api-app/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	AuthTokens(db dbx.DBTX) authtokens.Repository
	Recipes(db dbx.DBTX) recipes.Repository
}
