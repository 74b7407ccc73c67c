package ui

import "embed"

// Files holds the page templates and the static assets served under /static/.
//
//go:embed "html" "static"
var Files embed.FS
