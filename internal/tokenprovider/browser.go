package tokenprovider

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	log "github.com/sirupsen/logrus"

	"codeberg.org/snonux/fanyi/internal/tokenstore"
)

// BrowserProvider opens the web translator in headless Chrome and captures
// the token header from the first translate request the page sends.
type BrowserProvider struct {
	pageURL    string
	captureURL string
	header     string
	timeout    time.Duration
	allocOpts  []chromedp.ExecAllocatorOption
}

// NewBrowserProvider creates a browser-driven provider.
func NewBrowserProvider(cfg Config) *BrowserProvider {
	def := DefaultConfig()
	if cfg.PageURL == "" {
		cfg.PageURL = def.PageURL
	}
	if cfg.CaptureURL == "" {
		cfg.CaptureURL = def.CaptureURL
	}
	if cfg.Header == "" {
		cfg.Header = def.Header
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}

	return &BrowserProvider{
		pageURL:    cfg.PageURL,
		captureURL: cfg.CaptureURL,
		header:     cfg.Header,
		timeout:    cfg.Timeout,
		allocOpts:  append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...),
	}
}

// Acquire loads the translator page seeded with text and waits for the
// page's own translate request.
func (b *BrowserProvider) Acquire(ctx context.Context, seed string) (tokenstore.Token, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, b.allocOpts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	found := make(chan string, 1)
	chromedp.ListenTarget(browserCtx, func(ev interface{}) {
		req, ok := ev.(*network.EventRequestWillBeSent)
		if !ok || req.Request == nil || !strings.Contains(req.Request.URL, b.captureURL) {
			return
		}
		if token := headerValue(req.Request.Headers, b.header); token != "" {
			select {
			case found <- token:
			default:
			}
		}
	})

	page := b.pageURL + url.QueryEscape(seed)
	log.Debugf("tokenprovider: loading %s", page)
	if err := chromedp.Run(browserCtx, network.Enable(), chromedp.Navigate(page)); err != nil {
		select {
		case token := <-found:
			return tokenstore.Token(token), nil
		default:
		}
		return "", fmt.Errorf("failed to load translator page: %w", err)
	}

	select {
	case token := <-found:
		return tokenstore.Token(token), nil
	case <-ctx.Done():
		return "", fmt.Errorf("%w within %v", ErrNoToken, b.timeout)
	}
}

func headerValue(headers network.Headers, name string) string {
	for k, v := range headers {
		if !strings.EqualFold(k, name) {
			continue
		}
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
