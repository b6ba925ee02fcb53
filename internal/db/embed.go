package db

import "embed"

// migrationsFS holds one goose migration directory per dialect.
//
//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS
