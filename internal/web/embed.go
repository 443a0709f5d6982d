// Package web renders the directory and company pages from embedded
// HTML templates.
package web

import "embed"

//go:embed templates
var templateFS embed.FS
