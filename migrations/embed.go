// Package migrations bundles the goose SQL migrations into the binary so
// the server can migrate its own schema without a separate tool.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
