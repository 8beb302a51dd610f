// Package gamedata provides the embedded game content (enemy roster, dialog
// scripts, items) and utilities for loading it.
package gamedata

import "embed"

// dataFS embeds all YAML files from this directory at build time.
//
//go:embed *.yaml
var dataFS embed.FS
