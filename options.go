package mdprint

import (
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-mdprint/internal/pipeline"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout        time.Duration
	highlightStyle string
	assetPath      string
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF printing timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdprint: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(c *Converter) {
		if log != nil {
			c.log = log
		}
	}
}

// WithHighlighting highlights fenced code blocks with a chroma style such
// as "github" or "monokai". NewConverter rejects unknown names.
func WithHighlighting(style string) Option {
	return func(c *Converter) {
		c.cfg.highlightStyle = style
	}
}

// HighlightStyles lists the style names WithHighlighting accepts.
func HighlightStyles() []string {
	return pipeline.HighlightStyles()
}

// WithAssetPath loads the page template and print stylesheets from dir,
// falling back to the built-in ones for files it does not contain.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}
