// Package migrations embeds the goose SQL migrations that define the
// relational schema of the service.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
