package common

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version returns the build version embedded at compile time.
func Version() string {
	return strings.TrimSpace(version)
}

// ServerName returns the value reported in the Server header and on exported
// reports.
func ServerName() string {
	return "LoadLens/" + Version()
}
