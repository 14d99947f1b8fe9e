package layout

import (
	"go.uber.org/zap"

	"github.com/tsawler/docxlayout/text"
)

// Config holds configuration for the layout engine.
type Config struct {
	// DefaultTabStop is the interval of default tab stops in points.
	DefaultTabStop float64

	// Segmenter finds line break opportunities.
	Segmenter text.Segmenter

	// RepeatHeaderRows repeats table header rows on continuation pages.
	RepeatHeaderRows bool

	// Logger receives layout diagnostics. Nil disables logging.
	Logger *zap.Logger
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() Config {
	return Config{
		DefaultTabStop:   36,
		Segmenter:        text.UAX14{},
		RepeatHeaderRows: true,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.DefaultTabStop <= 0 {
		c.DefaultTabStop = d.DefaultTabStop
	}
	if c.Segmenter == nil {
		c.Segmenter = d.Segmenter
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}
