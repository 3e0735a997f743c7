// Package templates embeds the built-in templates of every target.
package templates

import "embed"

//go:embed typescript go
var FS embed.FS
