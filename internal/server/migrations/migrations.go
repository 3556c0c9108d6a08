// Package migrations embeds the goose migrations of the sequence issuer.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
