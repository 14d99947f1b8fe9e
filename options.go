package docxlayout

import (
	"go.uber.org/zap"

	"github.com/tsawler/docxlayout/container"
	"github.com/tsawler/docxlayout/font"
	"github.com/tsawler/docxlayout/layout"
	"github.com/tsawler/docxlayout/model"
	"github.com/tsawler/docxlayout/style"
)

// LoadOptions holds configuration for loading and laying out a document.
type LoadOptions struct {
	// Page geometry override; nil keeps per-section geometry
	geometry *model.PageGeometry

	metrics font.Provider
	layout  layout.Config
	limits  container.Limits
	log     *zap.Logger
	cache   *style.Cache
}

// defaultOptions returns the default load options.
func defaultOptions() LoadOptions {
	return LoadOptions{
		metrics: font.NewStandard(),
		layout:  layout.DefaultConfig(),
		limits:  container.DefaultLimits(),
		log:     zap.NewNop(),
	}
}

// clone creates a deep copy of LoadOptions. Providers, loggers and the
// style cache are shared.
func (o LoadOptions) clone() LoadOptions {
	c := o
	if o.geometry != nil {
		g := *o.geometry
		c.geometry = &g
	}
	return c
}
