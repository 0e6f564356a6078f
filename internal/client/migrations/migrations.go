// Package migrations embeds the SQL migrations for the client cache
// database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
