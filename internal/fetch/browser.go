package fetch

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// settleDelay gives client-side scripts a moment to finish mutating the DOM.
const settleDelay = 2 * time.Second

// WithBrowser renders a page in a headless browser and returns the serialized
// DOM. The result reflects what scripts built, not the bytes the server sent.
// Requires Chrome/Chromium to be installed on the system.
func WithBrowser(ctx context.Context, urlStr string, timeout time.Duration, logger *zap.Logger) (string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger.Debug("starting headless browser", zap.String("url", urlStr))

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(urlStr),
		chromedp.WaitReady("body"),
		chromedp.Sleep(settleDelay),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{
			URL:     urlStr,
			Message: "browser rendering failed",
			Cause:   err,
		}
	}

	logger.Debug("rendered page", zap.String("url", urlStr), zap.Int("bytes", len(html)))
	return html, nil
}
