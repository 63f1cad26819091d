// Package render defines the rasterizer capability: turning contract fields
// into a paginated PDF. Two interchangeable strategies implement it, the
// headless-browser print driver and the capture-and-slice assembler.
package render

import (
	"context"
	"errors"

	"github.com/Umidjon1990/Shartnoma/internal/contract"
)

// ErrGenerationFailed is the single opaque error surfaced to callers when a
// strategy fails. The underlying cause is logged, never exposed.
var ErrGenerationFailed = errors.New("pdf generation failed")

// Renderer produces a complete PDF byte buffer for the given fields, or an
// error. Partial output is never returned.
type Renderer interface {
	RenderPDF(ctx context.Context, f contract.Fields) ([]byte, error)
}
