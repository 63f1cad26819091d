// Package slicer implements the capture-side rasterizer strategy: the
// composed document is rasterized to one tall bitmap, which is then cut into
// full-width A4-height bands and reassembled page by page into a PDF. No
// print engine is involved; pagination is pure geometry.
package slicer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"math"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/image/draw"

	"github.com/Umidjon1990/Shartnoma/internal/compose"
	"github.com/Umidjon1990/Shartnoma/internal/contract"
	"github.com/Umidjon1990/Shartnoma/internal/render"
	"github.com/Umidjon1990/Shartnoma/internal/template"
)

// A4 geometry in millimeters.
const (
	PageWidthMM  = 210.0
	PageHeightMM = 297.0
	MarginMM     = 10.0
)

// ContentWidthMM is the printable width between the symmetric margins.
const ContentWidthMM = PageWidthMM - 2*MarginMM

// ContentHeightMM is one page's printable height.
const ContentHeightMM = PageHeightMM - 2*MarginMM

// CaptureFunc rasterizes standalone markup to a single tall bitmap of the
// whole document. Implementations must deliver an image whose width equals
// the capture width times a fixed multiplier; the production implementation
// is a headless-browser full screenshot.
type CaptureFunc func(ctx context.Context, markup string) ([]byte, error)

// TemplateSource yields the current contract template text.
type TemplateSource interface {
	Get() string
}

// Strategy is the capture-and-slice renderer.
type Strategy struct {
	capture   CaptureFunc
	templates TemplateSource
}

var _ render.Renderer = (*Strategy)(nil)

// New creates the strategy around a capture function and a template source.
func New(capture CaptureFunc, templates TemplateSource) *Strategy {
	return &Strategy{capture: capture, templates: templates}
}

// RenderPDF composes the document in capture mode, rasterizes it and slices
// the bitmap into pages. Any capture failure surfaces as the single opaque
// generation error.
func (s *Strategy) RenderPDF(ctx context.Context, f contract.Fields) ([]byte, error) {
	f = f.Normalize()

	tpl := template.Default
	if s.templates != nil {
		tpl = s.templates.Get()
	}
	markup, err := compose.Page(f, tpl, compose.Capture)
	if err != nil {
		log.Printf("[ERROR] pdf: compose for contract %s failed: %v", f.Number, err)
		return nil, render.ErrGenerationFailed
	}

	shot, err := s.capture(ctx, markup)
	if err != nil {
		log.Printf("[ERROR] pdf: capture for contract %s failed: %v", f.Number, err)
		return nil, render.ErrGenerationFailed
	}

	img, _, err := image.Decode(bytes.NewReader(shot))
	if err != nil {
		log.Printf("[ERROR] pdf: decoding capture for contract %s failed: %v", f.Number, err)
		return nil, render.ErrGenerationFailed
	}

	pdf, err := Slice(img)
	if err != nil {
		log.Printf("[ERROR] pdf: slicing capture for contract %s failed: %v", f.Number, err)
		return nil, render.ErrGenerationFailed
	}
	return pdf, nil
}

// PageCount returns the number of pages a capture of the given pixel size
// will occupy: ceil(imageHeight / pixelsPerPage).
func PageCount(width, height int) int {
	return len(Bands(width, height))
}

// Bands returns the source-image pixel bands, one per page, in order. Every
// band spans the full width; concatenating them reconstructs the image's
// rows exactly, with no gaps or overlaps. The band height is the pixel
// equivalent of one page's printable height at the image's own scale.
func Bands(width, height int) []image.Rectangle {
	if width <= 0 || height <= 0 {
		return nil
	}
	pxPerMM := float64(width) / ContentWidthMM
	pagePx := int(math.Ceil(ContentHeightMM * pxPerMM))

	var bands []image.Rectangle
	for offset := 0; offset < height; offset += pagePx {
		bottom := offset + pagePx
		if bottom > height {
			bottom = height
		}
		bands = append(bands, image.Rect(0, offset, width, bottom))
	}
	return bands
}

// Slice cuts the captured bitmap into full-width bands, one band per A4 page,
// and assembles the PDF. Bands are copied pixel rows, never rescaled, so the
// aspect ratio set by the capture step is preserved; the last page's unused
// remainder is padded with opaque white.
func Slice(img image.Image) ([]byte, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	bands := Bands(width, height)
	if len(bands) == 0 {
		return nil, fmt.Errorf("capture image is empty")
	}
	pagePx := bands[0].Dy()

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetTitle("Shartnoma", true)
	doc.SetCreator("Shartnoma", true)

	for i, band := range bands {
		// Page-sized canvas with the band copied onto an opaque white fill;
		// the source background is not trusted to be opaque everywhere.
		canvas := image.NewRGBA(image.Rect(0, 0, width, pagePx))
		draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
		dst := image.Rect(0, 0, width, band.Dy())
		draw.Draw(canvas, dst, img, image.Pt(bounds.Min.X, bounds.Min.Y+band.Min.Y), draw.Over)

		var buf bytes.Buffer
		if err := png.Encode(&buf, canvas); err != nil {
			return nil, fmt.Errorf("failed to encode page band: %w", err)
		}

		name := fmt.Sprintf("band-%d", i+1)
		doc.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, &buf)
		doc.AddPage()
		doc.ImageOptions(name, MarginMM, MarginMM, ContentWidthMM, ContentHeightMM, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	}

	var out bytes.Buffer
	if err := doc.Output(&out); err != nil {
		return nil, fmt.Errorf("failed to assemble PDF: %w", err)
	}
	return out.Bytes(), nil
}
