package isoview

import (
	"sync/atomic"

	"golang.org/x/text/language"
)

// DefaultMaxViewports is the registry capacity used unless overridden with
// WithMaxViewports.
const DefaultMaxViewports = 64

// Config holds the settings that may change between frames. All methods are
// safe for concurrent use; Render reads each value once per call.
type Config struct {
	multiThreading      atomic.Bool
	alwaysShowGridlines atomic.Bool
	weatherGloom        atomic.Bool
}

// MultiThreading reports whether painting fans out to worker goroutines.
func (c *Config) MultiThreading() bool { return c.multiThreading.Load() }

// SetMultiThreading enables or disables the worker pool. Disabling tears the
// pool down on the next Render.
func (c *Config) SetMultiThreading(v bool) { c.multiThreading.Store(v) }

// AlwaysShowGridlines reports whether new viewports start with gridlines
// and whether hiding gridlines is suppressed.
func (c *Config) AlwaysShowGridlines() bool { return c.alwaysShowGridlines.Load() }

// SetAlwaysShowGridlines changes AlwaysShowGridlines.
func (c *Config) SetAlwaysShowGridlines(v bool) { c.alwaysShowGridlines.Store(v) }

// WeatherGloom reports whether the climate's gloom filter is applied.
func (c *Config) WeatherGloom() bool { return c.weatherGloom.Load() }

// SetWeatherGloom changes WeatherGloom.
func (c *Config) SetWeatherGloom(v bool) { c.weatherGloom.Store(v) }

// Option configures a Manager during creation.
//
// Example:
//
//	m := isoview.NewManager(world, windows, screen, scene, atlas,
//	    isoview.WithMultiThreading(true),
//	    isoview.WithWorkers(4),
//	)
type Option func(*managerOptions)

type managerOptions struct {
	multiThreading bool
	workers        int
	gridlines      bool
	weatherGloom   bool
	maxViewports   int
	climate        Climate
	game           GameFlags
	locale         language.Tag
}

func defaultOptions() managerOptions {
	return managerOptions{
		weatherGloom: true,
		maxViewports: DefaultMaxViewports,
		locale:       language.English,
	}
}

// WithMultiThreading sets the initial multithreading mode.
func WithMultiThreading(enabled bool) Option {
	return func(o *managerOptions) {
		o.multiThreading = enabled
	}
}

// WithWorkers sets the worker pool size. Zero or negative uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *managerOptions) {
		o.workers = n
	}
}

// WithAlwaysShowGridlines makes new viewports start with gridlines.
func WithAlwaysShowGridlines(enabled bool) Option {
	return func(o *managerOptions) {
		o.gridlines = enabled
	}
}

// WithWeatherGloom enables or disables the weather gloom filter.
func WithWeatherGloom(enabled bool) Option {
	return func(o *managerOptions) {
		o.weatherGloom = enabled
	}
}

// WithMaxViewports sets the registry capacity. Values below 1 are ignored.
func WithMaxViewports(n int) Option {
	return func(o *managerOptions) {
		if n > 0 {
			o.maxViewports = n
		}
	}
}

// WithClimate supplies the weather gloom source.
func WithClimate(c Climate) Option {
	return func(o *managerOptions) {
		o.climate = c
	}
}

// WithGameFlags supplies the global game mode flags.
func WithGameFlags(g GameFlags) Option {
	return func(o *managerOptions) {
		o.game = g
	}
}

// WithLocale sets the locale used to format money labels.
func WithLocale(tag language.Tag) Option {
	return func(o *managerOptions) {
		o.locale = tag
	}
}
