// Package migrations embeds the goose SQL migrations so the server binary
// carries its own schema and needs no migration files on disk.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
