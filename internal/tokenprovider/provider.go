package tokenprovider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"codeberg.org/snonux/fanyi/internal/tokenstore"
)

// Provider acquires a new capability token. The seed is the text being
// translated; providers that drive the web translator use it to trigger a
// genuine translate request.
type Provider interface {
	Acquire(ctx context.Context, seed string) (tokenstore.Token, error)
}

// Provider kinds accepted by New.
const (
	KindBrowser = "browser"
	KindCommand = "command"
)

// ErrNoToken is returned when a provider finished without observing a token.
var ErrNoToken = errors.New("no capability token observed")

// Config holds the settings of all provider kinds.
type Config struct {
	Kind string

	// Browser settings
	PageURL    string // translator page, the seed is appended query-escaped
	CaptureURL string // requests containing this URL carry the token
	Header     string // name of the token header

	// Command settings
	Command string // helper command line, the seed is appended as last argument

	Timeout time.Duration

	// BreakerFailures trips the circuit breaker after this many consecutive
	// failures. Zero disables the breaker.
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

// DefaultConfig returns the settings for the public web translator.
func DefaultConfig() Config {
	return Config{
		Kind:            KindBrowser,
		PageURL:         "https://fanyi.baidu.com/mtpe-individual/transText?query=",
		CaptureURL:      "https://fanyi.baidu.com/ait/text/translate",
		Header:          "Acs-Token",
		Timeout:         20 * time.Second,
		BreakerFailures: 3,
		BreakerCooldown: time.Minute,
	}
}

// New creates the provider described by cfg, wrapped in a circuit breaker
// when cfg.BreakerFailures is set.
func New(cfg Config) (Provider, error) {
	var p Provider
	switch cfg.Kind {
	case KindBrowser, "":
		p = NewBrowserProvider(cfg)
	case KindCommand:
		cp, err := NewCommandProvider(cfg.Command, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		p = cp
	default:
		return nil, fmt.Errorf("unknown token provider: %s", cfg.Kind)
	}

	if cfg.BreakerFailures > 0 {
		p = NewBreaker(p, cfg.BreakerFailures, cfg.BreakerCooldown)
	}
	return p, nil
}
