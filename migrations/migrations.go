// Package migrations embeds the versioned SQL schema scripts applied at
// service startup when database migration is enabled.
package migrations

import "embed"

// Files holds the migration scripts in golang-migrate iofs layout.
//
//go:embed *.sql
var Files embed.FS
