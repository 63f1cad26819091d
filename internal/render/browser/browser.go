// Package browser implements the server-side rasterizer strategy: a shared
// headless Chrome instance prints the dedicated contract print route to PDF
// through its own pagination engine.
package browser

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/Umidjon1990/Shartnoma/internal/compose"
	"github.com/Umidjon1990/Shartnoma/internal/contract"
	"github.com/Umidjon1990/Shartnoma/internal/render"
)

// A4 paper size in inches, as the print engine expects it.
const (
	a4WidthIn  = 8.27
	a4HeightIn = 11.69
)

// Options configures the strategy.
type Options struct {
	// BaseURL of the server exposing the print route.
	BaseURL string
	// ExecPath optionally pins the Chrome binary; empty resolves from PATH.
	ExecPath string
	// NavigateTimeout bounds one whole render call.
	NavigateTimeout time.Duration
	// ReadyTimeout bounds the wait for the readiness marker.
	ReadyTimeout time.Duration
	// SettleDelay is the unconditional pause after the marker appears,
	// absorbing trailing layout work the marker does not guarantee.
	SettleDelay time.Duration
}

// DefaultOptions returns the production timeouts.
func DefaultOptions(baseURL string) Options {
	return Options{
		BaseURL:         baseURL,
		NavigateTimeout: 30 * time.Second,
		ReadyTimeout:    10 * time.Second,
		SettleDelay:     time.Second,
	}
}

// Strategy drives the shared browser. The browser process is a lazily
// launched singleton reused across calls; every render opens its own tab, so
// concurrent calls only contend on the launch itself.
type Strategy struct {
	opts Options

	mu         sync.Mutex
	browserCtx context.Context
	cancels    []context.CancelFunc
}

var _ render.Renderer = (*Strategy)(nil)

// New creates the strategy without launching anything; the browser starts on
// first use.
func New(opts Options) *Strategy {
	return &Strategy{opts: opts}
}

// browser returns the shared browser context, launching Chrome if absent or
// re-launching it when the previous instance is gone. Idempotent under
// concurrent first use.
func (s *Strategy) browser() (context.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browserCtx != nil && s.browserCtx.Err() == nil {
		return s.browserCtx, nil
	}
	s.closeLocked()

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if s.opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(s.opts.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Run with no actions starts the browser process eagerly so launch
	// failures surface here instead of inside the first render.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to launch headless browser: %w", err)
	}

	s.browserCtx = browserCtx
	s.cancels = []context.CancelFunc{browserCancel, allocCancel}
	return browserCtx, nil
}

func (s *Strategy) closeLocked() {
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil
	s.browserCtx = nil
}

// Close shuts the shared browser down.
func (s *Strategy) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

// printURL builds the print-route URL carrying the six fields as query
// parameters.
func (s *Strategy) printURL(f contract.Fields) string {
	q := url.Values{}
	q.Set("name", f.Name)
	q.Set("age", f.Age)
	q.Set("course", f.Course)
	q.Set("format", f.Format)
	q.Set("date", f.Date)
	q.Set("number", f.Number)
	return s.opts.BaseURL + "/print/contract?" + q.Encode()
}

// RenderPDF opens a new tab, navigates to the print route, waits for the
// readiness marker plus the settle delay, and prints to a single A4 PDF with
// backgrounds and zero margins. The tab is always closed; the shared browser
// stays up. Any failure surfaces as render.ErrGenerationFailed.
func (s *Strategy) RenderPDF(ctx context.Context, f contract.Fields) ([]byte, error) {
	f = f.Normalize()

	browserCtx, err := s.browser()
	if err != nil {
		log.Printf("[ERROR] pdf: %v", err)
		return nil, render.ErrGenerationFailed
	}

	tabCtx, closeTab := chromedp.NewContext(browserCtx)
	defer closeTab()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, s.opts.NavigateTimeout)
	defer cancelTimeout()

	// Honor caller cancellation alongside the tab's own deadline.
	go func() {
		select {
		case <-ctx.Done():
			cancelTimeout()
		case <-tabCtx.Done():
		}
	}()

	var pdf []byte
	err = chromedp.Run(tabCtx,
		chromedp.EmulateViewport(compose.CaptureWidth, compose.CaptureHeight, chromedp.EmulateScale(2)),
		chromedp.Navigate(s.printURL(f)),
		waitForMarker(s.opts.ReadyTimeout),
		chromedp.Sleep(s.opts.SettleDelay),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var printErr error
			pdf, _, printErr = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4WidthIn).
				WithPaperHeight(a4HeightIn).
				WithMarginTop(0).
				WithMarginRight(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithPreferCSSPageSize(false).
				Do(ctx)
			return printErr
		}),
	)
	if err != nil {
		log.Printf("[ERROR] pdf: print of contract %s failed: %v", f.Number, err)
		return nil, render.ErrGenerationFailed
	}
	return pdf, nil
}

// waitForMarker polls for the readiness marker under its own timeout. The
// marker gates printing because the route's rendering is asynchronous
// relative to navigation completion.
func waitForMarker(timeout time.Duration) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		waitCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		if err := chromedp.WaitReady("#"+compose.ReadyMarkerID, chromedp.ByQuery).Do(waitCtx); err != nil {
			return fmt.Errorf("readiness marker not observed: %w", err)
		}
		return nil
	})
}

// Screenshot rasterizes standalone markup to one tall PNG at the capture
// width. Used as the production capture function of the slicing strategy.
func (s *Strategy) Screenshot(ctx context.Context, markup string) ([]byte, error) {
	browserCtx, err := s.browser()
	if err != nil {
		return nil, err
	}

	tabCtx, closeTab := chromedp.NewContext(browserCtx)
	defer closeTab()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, s.opts.NavigateTimeout)
	defer cancelTimeout()

	go func() {
		select {
		case <-ctx.Done():
			cancelTimeout()
		case <-tabCtx.Done():
		}
	}()

	var shot []byte
	err = chromedp.Run(tabCtx,
		chromedp.EmulateViewport(compose.CaptureWidth, compose.CaptureHeight, chromedp.EmulateScale(2)),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, treeErr := page.GetFrameTree().Do(ctx)
			if treeErr != nil {
				return treeErr
			}
			return page.SetDocumentContent(tree.Frame.ID, markup).Do(ctx)
		}),
		waitForMarker(s.opts.ReadyTimeout),
		chromedp.Sleep(s.opts.SettleDelay),
		chromedp.FullScreenshot(&shot, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to capture document: %w", err)
	}
	return shot, nil
}
