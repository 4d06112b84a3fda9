// Package migrations holds the goose-formatted Postgres schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
