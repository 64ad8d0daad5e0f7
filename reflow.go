// Package reflow provides a deterministic pagination engine for reader-style
// documents: given a chapter's content and a fixed viewport/chrome
// configuration, it splits the content into an ordered sequence of pages.
//
// Basic usage:
//
//	engine := reflow.New(reflow.Config{Width: 420, Height: 180})
//	pages, err := engine.RenderChapter(src, 0)
//	if err != nil {
//	    // handle error
//	}
//
// Five access modes over the same reflow process are available: full batch
// ([Engine.RenderChapter]), page-range slice ([Engine.RenderChapterRange]),
// borrowed lazy sequence ([Engine.PageIterator]), owned streaming sequence
// ([Engine.StreamPages]), and callback-driven with cooperative cancellation
// ([Engine.RenderWithCancel]). All of them agree exactly on output for
// the same input. Layout is fully deterministic, so the configuration
// fingerprint returned by [Engine.ProfileID] is a valid external cache key.
//
// Documents reach the engine through the source.Source interface; text
// measurement happens through measure.Measurer. Neither container parsing
// nor rendering happens here.
package reflow

import (
	"github.com/tsawler/reflow/layout"
	"github.com/tsawler/reflow/measure"
)

// Config is the frozen engine configuration: the reflow viewport plus the
// chrome flags. Value-equal configurations always yield value-equal profile
// ids and identical page sequences for identical content.
type Config struct {
	// Width and Height describe the reflow viewport.
	Width  float64
	Height float64

	// ShowProgress reserves space for the reading progress indicator.
	ShowProgress bool

	// ShowFooter reserves space for the footer.
	ShowFooter bool
}

// layout converts the configuration to the reflow engine's form.
func (c Config) layout() layout.Config {
	return layout.Config{
		Viewport:        c.viewport(),
		ReserveProgress: c.ShowProgress,
		ReserveFooter:   c.ShowFooter,
	}
}

// Option configures optional engine collaborators at construction.
type Option func(*Engine)

// WithMeasurer sets the content measurer. The default is
// measure.NewMonospace().
func WithMeasurer(m measure.Measurer) Option {
	return func(e *Engine) {
		if m != nil {
			e.measurer = m
		}
	}
}

// New creates an engine bound to cfg. The configuration and collaborators
// are frozen for the engine's lifetime.
//
// Example:
//
//	engine := reflow.New(
//	    reflow.Config{Width: 420, Height: 180, ShowFooter: true},
//	    reflow.WithMeasurer(measure.NewFace(nil)),
//	)
func New(cfg Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:      cfg,
		measurer: measure.NewMonospace(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewForDisplay derives an engine configuration from target display
// dimensions, with all chrome disabled.
func NewForDisplay(width, height float64, opts ...Option) *Engine {
	return New(Config{Width: width, Height: height}, opts...)
}
