// Package doclayout predicts how a DOCX document paginates and reports
// layout defects before anyone opens it.
package doclayout

import (
	"github.com/go-logr/logr"
	"github.com/ukaji3/doclayout-go/pkg/doclayout/config"
)

// Mode represents the analysis mode.
type Mode string

const (
	// ModeLight simulates pages and runs the page layout rules only.
	ModeLight Mode = "light"
	// ModeStandard adds document structure checks and column width analysis.
	ModeStandard Mode = "standard"
	// ModeVerbose also includes the full element list in the report.
	ModeVerbose Mode = "verbose"
)

// ParseMode converts a flag value to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch m := Mode(s); m {
	case ModeLight, ModeStandard, ModeVerbose:
		return m, true
	}
	return "", false
}

// Options configures analysis behavior.
type Options struct {
	// Mode specifies the analysis mode (light, standard, verbose).
	Mode Mode
	// Config overrides the page geometry and thresholds.
	// If nil, config.Default() is used.
	Config *config.Config
	// IncludeElements specifies whether to include the element list.
	// If nil, defaults to true for verbose mode, false otherwise.
	IncludeElements *bool
	// Logger receives progress messages. The zero value discards them.
	Logger logr.Logger
}

// DefaultOptions returns default analysis options.
func DefaultOptions() Options {
	return Options{
		Mode:   ModeStandard,
		Logger: logr.Discard(),
	}
}

// Settings returns the configuration in effect.
func (o Options) Settings() config.Config {
	if o.Config != nil {
		return *o.Config
	}
	return config.Default()
}

// ShouldIncludeElements returns whether to include the element list.
func (o Options) ShouldIncludeElements() bool {
	if o.IncludeElements != nil {
		return *o.IncludeElements
	}
	return o.Mode == ModeVerbose
}

// ShouldCheckStructure returns whether to run the structure checks and the
// column width analysis.
func (o Options) ShouldCheckStructure() bool {
	return o.Mode != ModeLight
}
