package migrations

import "embed"

// FS contains embedded PostgreSQL migrations for catalog storage.
//
//go:embed *.sql
var FS embed.FS
