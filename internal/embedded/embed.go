// Package embedded holds the sample catalog compiled into the binary. It is
// served when no data file is configured.
package embedded

import (
	"embed"

	"github.com/agentstation/vinoteca/pkg/catalogs"
)

// DataPath is the location of the sample catalog inside FS.
const DataPath = "data/vinoteca.json"

// FS embeds the sample catalog at build time.
//
//go:embed data/*
var FS embed.FS

// Source returns a catalog source reading the embedded sample.
func Source() catalogs.Source {
	return catalogs.NewFSSource(FS, DataPath)
}
