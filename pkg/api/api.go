// Package api is the embeddable interface for generating enrollment contract
// documents without running the HTTP server.
package api

import (
	"context"
	"fmt"
	"os"

	"github.com/Umidjon1990/Shartnoma/internal/compose"
	"github.com/Umidjon1990/Shartnoma/internal/contract"
	"github.com/Umidjon1990/Shartnoma/internal/render"
	"github.com/Umidjon1990/Shartnoma/internal/render/browser"
	"github.com/Umidjon1990/Shartnoma/internal/render/slicer"
	"github.com/Umidjon1990/Shartnoma/internal/template"
)

// Fields holds the substitutable values of one contract document.
type Fields = contract.Fields

// Generator is the main API for producing contract PDFs
type Generator struct {
	options   Options
	templates *template.Store
	chrome    *browser.Strategy
	renderer  render.Renderer
}

// New creates a new contract generator with default options
func New() *Generator {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a new contract generator with the specified options
func NewWithOptions(options Options, opts ...Option) *Generator {
	for _, opt := range opts {
		opt(&options)
	}

	g := &Generator{
		options:   options,
		templates: template.NewStore(),
	}
	if options.Template != "" {
		g.templates.Set(options.Template)
	}

	browserOpts := browser.Options{
		BaseURL:         options.BaseURL,
		ExecPath:        options.ChromeExecPath,
		NavigateTimeout: options.NavigateTimeout,
		ReadyTimeout:    options.ReadyTimeout,
		SettleDelay:     options.SettleDelay,
	}

	switch options.Strategy {
	case StrategySlicer:
		capture := options.Capture
		if capture == nil {
			g.chrome = browser.New(browserOpts)
			capture = g.chrome.Screenshot
		}
		g.renderer = slicer.New(capture, g.templates)
	default:
		g.chrome = browser.New(browserOpts)
		g.renderer = g.chrome
	}
	return g
}

// Generate produces the PDF bytes of one contract document
func (g *Generator) Generate(ctx context.Context, f Fields) ([]byte, error) {
	f = f.Sanitize()
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid contract fields: %w", err)
	}
	return g.renderer.RenderPDF(ctx, f.Normalize())
}

// GenerateToFile produces the PDF of one contract document and writes it to
// the specified file
func (g *Generator) GenerateToFile(ctx context.Context, f Fields, outputPath string) error {
	pdf, err := g.Generate(ctx, f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write PDF file: %w", err)
	}
	return nil
}

// ComposePage returns the print-route document for the given fields, the same
// page the headless browser captures
func (g *Generator) ComposePage(f Fields) (string, error) {
	return compose.Page(f.Sanitize().Normalize(), g.templates.Get(), compose.Capture)
}

// SetTemplate replaces the contract template text used by later generations
func (g *Generator) SetTemplate(text string) {
	g.templates.Set(text)
}

// Template returns the current contract template text
func (g *Generator) Template() string {
	return g.templates.Get()
}

// Filename derives the suggested download name for a generated document
func Filename(number, studentName string) string {
	return contract.Filename(number, studentName)
}

// Close releases the headless browser, if one was launched
func (g *Generator) Close() {
	if g.chrome != nil {
		g.chrome.Close()
	}
}
