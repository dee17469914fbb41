// Package migrations bundles the Oracle schema so the binaries do not depend
// on the working directory.
package migrations

import "embed"

// FS holds the versioned NNNNNN_name.up.sql / .down.sql files.
//
//go:embed *.sql
var FS embed.FS
