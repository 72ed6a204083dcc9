// Package migrations ships the sqlite schema. Files are applied in name
// order and each runs once.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
