// Package scenario provides the embedded market scenarios and utilities for
// loading them into a simulation.
package scenario

import "embed"

// dataFS embeds all YAML files from this directory at build time.
//
//go:embed *.yaml
var dataFS embed.FS
