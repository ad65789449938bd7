// Package migrations embeds the SQL schema migrations served to
// golang-migrate through an iofs source driver.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
