package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// maxPageSize caps how much of a response Static reads.
const maxPageSize = 8 << 20

// Static downloads pages over HTTP without running their scripts.
type Static struct {
	Selector string
	Timeout  time.Duration
	// DebugDir, if set, receives page.html when Selector matches nothing.
	DebugDir string
	Client   *http.Client
	Log      Logger
}

func (s *Static) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return http.DefaultClient
}

func (s *Static) Fetch(ctx context.Context, url string) (string, error) {
	log := loggerOrNop(s.Log)
	timeout := timeoutOrDefault(s.Timeout)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	log.Debugw("Downloading page", "url", url, "timeout", timeout)
	resp, err := s.client().Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %s after %s", ErrTimeout, url, timeout)
		}
		return "", fmt.Errorf("failed to get %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %s after %s", ErrTimeout, url, timeout)
		}
		return "", fmt.Errorf("failed to read %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to get %s: %s", url, resp.Status)
	}

	page := string(body)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", url, err)
	}
	if doc.Find(s.Selector).Length() == 0 {
		if written, err := saveArtifacts(s.DebugDir, artifact{pageArtifact, body}); err != nil {
			log.Warnw("Failed to save debug artifacts", "error", err)
		} else if len(written) > 0 {
			log.Warnw("Saved debug artifacts", "files", written)
		}
		return "", fmt.Errorf("%w: %q in %s", ErrNoMatch, s.Selector, url)
	}
	return page, nil
}
