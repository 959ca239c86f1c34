// Package gamedata provides the embedded tuning data (rules and tile
// palette) and helpers for loading it.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
