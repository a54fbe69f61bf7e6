// Package migrations bundles the store's schema files.
package migrations

import "embed"

// FS holds the ordered SQL migration files applied at startup.
//
//go:embed *.sql
var FS embed.FS
