package tokenprovider

import (
	"testing"
	"time"

	"github.com/chromedp/cdproto/network"
)

func TestHeaderValue(t *testing.T) {
	headers := network.Headers{
		"Content-Type": "application/json",
		"acs-token":    " 1700000000_abc ",
		"X-Count":      42,
	}

	if got := headerValue(headers, "Acs-Token"); got != "1700000000_abc" {
		t.Errorf("headerValue(Acs-Token) = %q", got)
	}
	if got := headerValue(headers, "X-Count"); got != "" {
		t.Errorf("headerValue on non-string = %q, want empty", got)
	}
	if got := headerValue(headers, "Missing"); got != "" {
		t.Errorf("headerValue(Missing) = %q, want empty", got)
	}
}

func TestNewBrowserProvider_Defaults(t *testing.T) {
	p := NewBrowserProvider(Config{})
	def := DefaultConfig()

	if p.pageURL != def.PageURL || p.captureURL != def.CaptureURL || p.header != def.Header {
		t.Errorf("defaults not applied: %+v", p)
	}
	if p.timeout != 20*time.Second {
		t.Errorf("timeout = %v, want 20s", p.timeout)
	}
	if len(p.allocOpts) == 0 {
		t.Error("allocator options not initialised")
	}
}
