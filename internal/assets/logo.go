// Package assets carries the embedded organization branding used by the
// document composer. The logo is stored as SVG and rasterized once to PNG so
// it can be inlined as a data URI into capture-ready markup.
package assets

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// logoSVG is the "Zamonaviy Ta'lim" mark: a blue rounded square with an open
// book silhouette. Shape-only on purpose, oksvg does not rasterize <text>.
const logoSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 64">
  <rect x="2" y="2" width="60" height="60" rx="12" fill="#1e3a8a"/>
  <path d="M12 22 L32 16 L52 22 L52 26 L32 20 L12 26 Z" fill="#ffffff"/>
  <path d="M16 28 L30 32 L30 48 L16 44 Z" fill="#dbeafe"/>
  <path d="M48 28 L34 32 L34 48 L48 44 Z" fill="#dbeafe"/>
  <circle cx="32" cy="24" r="2.5" fill="#facc15"/>
</svg>`

// LogoSize is the edge length in pixels of the rasterized logo.
const LogoSize = 128

var (
	logoOnce sync.Once
	logoURI  string
	logoImg  *image.RGBA
	logoErr  error
)

func rasterize() {
	icon, err := oksvg.ReadIconStream(strings.NewReader(logoSVG))
	if err != nil {
		logoErr = fmt.Errorf("failed to parse logo SVG: %w", err)
		return
	}
	icon.SetTarget(0, 0, float64(LogoSize), float64(LogoSize))

	img := image.NewRGBA(image.Rect(0, 0, LogoSize, LogoSize))
	scanner := rasterx.NewScannerGV(LogoSize, LogoSize, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(LogoSize, LogoSize, scanner), 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		logoErr = fmt.Errorf("failed to encode logo PNG: %w", err)
		return
	}
	logoImg = img
	logoURI = "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

// LogoDataURI returns the rasterized logo as a PNG data URI.
func LogoDataURI() (string, error) {
	logoOnce.Do(rasterize)
	return logoURI, logoErr
}

// LogoImage returns the rasterized logo image.
func LogoImage() (*image.RGBA, error) {
	logoOnce.Do(rasterize)
	return logoImg, logoErr
}
