// Package migrations embeds the goose SQL migrations so the migrate binary runs from any directory.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
