// Package migrations holds the history database schema as numbered
// up/down SQL files.
package migrations

import "embed"

// FS is read by the store in file name order; NNN_name.up.sql applies
// version NNN.
//
//go:embed *.sql
var FS embed.FS
