// Package yamlutil wraps goccy/go-yaml for the config file and the settings
// blocks embedded in theme stylesheets.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// DefaultMaxInputSize limits YAML input to prevent memory exhaustion.
const DefaultMaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

type options struct {
	strict  bool
	maxSize int
}

// Option configures decoding.
type Option func(*options)

// Strict rejects fields with no destination.
func Strict() Option {
	return func(o *options) { o.strict = true }
}

// MaxSize overrides DefaultMaxInputSize.
func MaxSize(n int) Option {
	return func(o *options) { o.maxSize = n }
}

// Unmarshal decodes data into v.
func Unmarshal(data []byte, v any, opts ...Option) error {
	o := options{maxSize: DefaultMaxInputSize}
	for _, opt := range opts {
		opt(&o)
	}

	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > o.maxSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), o.maxSize)
	}
	if v == nil {
		return ErrNilDestination
	}

	var decodeOpts []yaml.DecodeOption
	if o.strict {
		decodeOpts = append(decodeOpts, yaml.Strict())
	}
	if err := yaml.UnmarshalWithOptions(data, v, decodeOpts...); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}
