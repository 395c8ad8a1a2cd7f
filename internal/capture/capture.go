package capture

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/applyflow/applyflow/internal/config"
	"github.com/chromedp/chromedp"
)

// ErrRender marks failures of the render-and-capture step: navigation
// timeouts, invalid URLs, browser crashes. Callers distinguish these from
// downstream parsing errors with errors.Is.
var ErrRender = errors.New("render failed")

// Capturer renders a page and returns a full-page screenshot.
type Capturer interface {
	Capture(ctx context.Context, url string) ([]byte, error)
}

// ChromeCapturer drives a headless Chrome instance via chromedp. Each Capture
// call launches a fresh browser context and tears it down before returning,
// so one renderer instance is alive at a time.
type ChromeCapturer struct {
	timeout time.Duration
	width   int
	height  int
}

// NewChromeCapturer builds a capturer bounded by the render configuration.
func NewChromeCapturer(cfg *config.RenderConfig) *ChromeCapturer {
	timeout := cfg.NavigationTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	width, height := cfg.ViewportWidth, cfg.ViewportHeight
	if width <= 0 || height <= 0 {
		width, height = 1920, 1080
	}
	return &ChromeCapturer{timeout: timeout, width: width, height: height}
}

// Capture navigates to url under a realistic viewport, waits for the page to
// load and returns a full-page PNG. The browser is always released, on the
// error path included.
func (c *ChromeCapturer) Capture(ctx context.Context, url string) ([]byte, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, c.timeout)
	defer cancelRun()

	var png []byte
	err := chromedp.Run(runCtx,
		chromedp.EmulateViewport(int64(c.width), int64(c.height)),
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.FullScreenshot(&png, 90),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRender, url, err)
	}
	return png, nil
}
