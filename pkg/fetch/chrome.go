package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// artifactTimeout bounds how long a failed fetch spends collecting its page
// snapshot and screenshot.
const artifactTimeout = 10 * time.Second

// Chrome renders pages in headless Chrome.
type Chrome struct {
	// Selector must match before the page counts as rendered.
	Selector string
	// Timeout bounds navigation and the wait for Selector.
	Timeout time.Duration
	// CI adds the flags Chrome needs inside containers.
	CI bool
	// DebugDir, if set, receives page.html and screenshot.png on timeout.
	DebugDir string
	Log      Logger
}

func (c *Chrome) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts, chromedp.WindowSize(1280, 1024))
	if c.CI {
		opts = append(opts,
			chromedp.NoSandbox,
			chromedp.DisableGPU,
			chromedp.Flag("disable-dev-shm-usage", true),
		)
	}
	return opts
}

// Fetch starts a browser, loads url, and returns the document's outer HTML
// once Selector matches. The browser is shut down before Fetch returns.
func (c *Chrome) Fetch(ctx context.Context, url string) (string, error) {
	log := loggerOrNop(c.Log)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, c.allocatorOptions()...)
	defer cancelAlloc()
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	// Launch outside the render deadline so a slow browser start is not
	// reported as a slow page.
	if err := chromedp.Run(tabCtx); err != nil {
		return "", fmt.Errorf("failed to start browser: %w", err)
	}

	timeout := timeoutOrDefault(c.Timeout)
	waitCtx, cancelWait := context.WithTimeout(tabCtx, timeout)
	defer cancelWait()

	log.Debugw("Loading page", "url", url, "selector", c.Selector, "timeout", timeout)
	err := chromedp.Run(waitCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady(c.Selector, chromedp.ByQuery),
	)
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		c.dumpArtifacts(tabCtx, log)
		return "", fmt.Errorf("%w: %q after %s", ErrTimeout, c.Selector, timeout)
	}
	if err != nil {
		return "", fmt.Errorf("failed to load %s: %w", url, err)
	}

	var page string
	if err := chromedp.Run(tabCtx, chromedp.OuterHTML("html", &page, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("failed to read page: %w", err)
	}
	return page, nil
}

// dumpArtifacts saves whatever the browser is showing. Failures are logged
// and otherwise ignored since the fetch has already failed.
func (c *Chrome) dumpArtifacts(tabCtx context.Context, log Logger) {
	if c.DebugDir == "" {
		return
	}
	ctx, cancel := context.WithTimeout(tabCtx, artifactTimeout)
	defer cancel()

	var (
		page string
		shot []byte
	)
	if err := chromedp.Run(ctx, chromedp.OuterHTML("html", &page, chromedp.ByQuery)); err != nil {
		log.Warnw("Failed to capture page source", "error", err)
	}
	if err := chromedp.Run(ctx, chromedp.FullScreenshot(&shot, 90)); err != nil {
		log.Warnw("Failed to capture screenshot", "error", err)
	}

	written, err := saveArtifacts(c.DebugDir,
		artifact{pageArtifact, []byte(page)},
		artifact{screenshotArtifact, shot},
	)
	if err != nil {
		log.Warnw("Failed to save debug artifacts", "error", err)
	}
	if len(written) > 0 {
		log.Warnw("Saved debug artifacts", "files", written)
	}
}
