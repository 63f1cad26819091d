package api

import (
	"time"

	"github.com/Umidjon1990/Shartnoma/internal/render/slicer"
)

// Strategy selects how a generator turns a composed document into PDF bytes.
type Strategy string

const (
	// StrategyBrowser prints through a headless Chrome instance. Highest
	// fidelity; requires a Chrome binary and a reachable print route.
	StrategyBrowser Strategy = "browser"
	// StrategySlicer captures the document as one tall image and slices it
	// into A4 pages assembled with an embedded PDF writer.
	StrategySlicer Strategy = "slicer"
)

// Options represents configuration options for the contract generator.
type Options struct {
	// Rendering strategy
	Strategy Strategy

	// BaseURL of the server exposing the print route. The browser strategy
	// navigates here; ignored by the slicer.
	BaseURL string

	// ChromeExecPath optionally pins the Chrome binary; empty resolves from PATH.
	ChromeExecPath string

	// Timeouts of the browser strategy
	NavigateTimeout time.Duration
	ReadyTimeout    time.Duration
	SettleDelay     time.Duration

	// Template overrides the built-in contract template text when non-empty.
	Template string

	// Capture overrides the slicer's image source. When nil the slicer
	// captures through the same headless browser the browser strategy uses.
	Capture slicer.CaptureFunc
}

// Option is a function that modifies Options
type Option func(*Options)

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		Strategy:        StrategyBrowser,
		BaseURL:         "http://localhost:8080",
		NavigateTimeout: 30 * time.Second,
		ReadyTimeout:    10 * time.Second,
		SettleDelay:     time.Second,
	}
}

// WithStrategy selects the rendering strategy
func WithStrategy(s Strategy) Option {
	return func(o *Options) {
		o.Strategy = s
	}
}

// WithBaseURL sets the server address the headless browser navigates to
func WithBaseURL(baseURL string) Option {
	return func(o *Options) {
		o.BaseURL = baseURL
	}
}

// WithChromeExecPath pins the Chrome binary used by the headless browser
func WithChromeExecPath(path string) Option {
	return func(o *Options) {
		o.ChromeExecPath = path
	}
}

// WithNavigateTimeout bounds one whole browser render call
func WithNavigateTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.NavigateTimeout = d
	}
}

// WithReadyTimeout bounds the wait for the document readiness marker
func WithReadyTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.ReadyTimeout = d
	}
}

// WithSettleDelay sets the pause after the readiness marker appears
func WithSettleDelay(d time.Duration) Option {
	return func(o *Options) {
		o.SettleDelay = d
	}
}

// WithTemplate replaces the built-in contract template text
func WithTemplate(text string) Option {
	return func(o *Options) {
		o.Template = text
	}
}

// WithCapture sets a custom image source for the slicer strategy
func WithCapture(capture slicer.CaptureFunc) Option {
	return func(o *Options) {
		o.Capture = capture
	}
}
