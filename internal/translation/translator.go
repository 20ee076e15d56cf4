package translation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"codeberg.org/snonux/fanyi/internal/stream"
	"codeberg.org/snonux/fanyi/internal/tokenprovider"
	"codeberg.org/snonux/fanyi/internal/tokenstore"
)

// maxAttempts bounds the requests per query: the first attempt plus one
// retry after a token refresh.
const maxAttempts = 2

// Config holds the endpoint settings.
type Config struct {
	Endpoint  string
	Origin    string
	UserAgent string
	// TokenHeader is the header that carries the capability token.
	TokenHeader string
	// Timeout bounds one attempt, from sending the request to the end of
	// the stream.
	Timeout time.Duration
}

// DefaultConfig returns the settings of the public web translator.
func DefaultConfig() Config {
	return Config{
		Endpoint:    "https://fanyi.baidu.com/ait/text/translate",
		Origin:      "https://fanyi.baidu.com",
		UserAgent:   "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/141.0.0.0 Safari/537.36",
		TokenHeader: "Acs-Token",
		Timeout:     30 * time.Second,
	}
}

// RetryState tracks one query through its attempts.
type RetryState struct {
	Attempt     int
	LastFailure *Failure
}

// Translator resolves queries one at a time. It is not safe for
// concurrent use.
type Translator struct {
	cfg       Config
	client    *http.Client
	store     tokenstore.Store
	provider  tokenprovider.Provider
	now       func() time.Time
	lastStamp int64
}

// NewTranslator creates a translator using the given token store and
// provider.
func NewTranslator(cfg Config, store tokenstore.Store, provider tokenprovider.Provider) *Translator {
	def := DefaultConfig()
	if cfg.Endpoint == "" {
		cfg.Endpoint = def.Endpoint
	}
	if cfg.TokenHeader == "" {
		cfg.TokenHeader = def.TokenHeader
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}

	return &Translator{
		cfg:      cfg,
		client:   &http.Client{},
		store:    store,
		provider: provider,
		now:      time.Now,
	}
}

// Translate resolves query. Every error ends up in the returned Outcome.
func (t *Translator) Translate(ctx context.Context, query string) Outcome {
	logger := log.WithField("request_id", uuid.NewString())

	req, err := t.newRequest(query)
	if err != nil {
		return failure(Request{Query: query}, ErrInvalidQuery, "please enter text to translate", err)
	}
	logger.Debugf("translation: %s -> %s, %d chars", req.From, req.To, len([]rune(req.Query)))

	token, ok := t.store.Get()
	if !ok {
		logger.Info("translation: no cached token, acquiring one")
		if token, err = t.acquire(ctx, req.Query); err != nil {
			return failure(req, ErrTokenAcquisition, "failed to acquire capability token", err)
		}
	}

	var state RetryState
	for state.Attempt < maxAttempts {
		state.Attempt++
		if state.Attempt > 1 {
			if req, err = t.newRequest(query); err != nil {
				return failure(req, ErrInvalidQuery, "please enter text to translate", err)
			}
		}
		attemptLog := logger.WithField("attempt", state.Attempt)

		res, fail := t.attempt(ctx, req, token, attemptLog)
		if fail == nil {
			attemptLog.Debugf("translation: stream completed, %d frames, %d events", res.Frames, len(res.Events))
			return Select(req, res.Events)
		}
		state.LastFailure = fail

		if fail.Kind != ErrAuthRejected {
			attemptLog.Warnf("translation: %v", fail)
			break
		}
		if state.Attempt == maxAttempts {
			attemptLog.Warn("translation: refreshed token rejected as well, giving up")
			fail.Reason = "capability token rejected after refresh"
			break
		}

		attemptLog.Info("translation: token rejected, refreshing")
		if err := t.store.Invalidate(); err != nil {
			attemptLog.Warnf("translation: failed to invalidate cached token: %v", err)
		}
		if token, err = t.acquire(ctx, req.Query); err != nil {
			state.LastFailure = &Failure{Kind: ErrTokenAcquisition, Reason: "failed to acquire capability token", Err: err}
			break
		}
	}

	return Outcome{Kind: KindFailure, Request: req, Failure: state.LastFailure}
}

// RefreshToken drops the cached token and stores a freshly acquired one.
func (t *Translator) RefreshToken(ctx context.Context, seed string) error {
	if err := t.store.Invalidate(); err != nil {
		return fmt.Errorf("failed to invalidate token: %w", err)
	}
	if _, err := t.acquire(ctx, seed); err != nil {
		return fmt.Errorf("failed to acquire capability token: %w", err)
	}
	return nil
}

func (t *Translator) acquire(ctx context.Context, seed string) (tokenstore.Token, error) {
	token, err := t.provider.Acquire(ctx, seed)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", tokenprovider.ErrNoToken
	}
	if err := t.store.Put(token); err != nil {
		log.Warnf("translation: failed to cache token: %v", err)
	}
	return token, nil
}

// newRequest builds a request whose timestamp is strictly greater than
// that of any earlier request of this translator.
func (t *Translator) newRequest(query string) (Request, error) {
	stamp := t.now().UnixMilli()
	if stamp <= t.lastStamp {
		stamp = t.lastStamp + 1
	}
	req, err := NewRequest(query, time.UnixMilli(stamp))
	if err != nil {
		return req, err
	}
	t.lastStamp = stamp
	return req, nil
}

func (t *Translator) attempt(ctx context.Context, req Request, token tokenstore.Token, logger *log.Entry) (stream.Result, *Failure) {
	ctx, cancel := context.WithTimeout(ctx, t.cfg.Timeout)
	defer cancel()

	body, err := req.Body()
	if err != nil {
		return stream.Result{}, &Failure{Kind: ErrProtocol, Reason: "failed to encode request", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return stream.Result{}, &Failure{Kind: ErrTransport, Reason: "failed to create request", Err: err}
	}
	t.applyHeaders(httpReq, token)

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return stream.Result{}, &Failure{Kind: ErrTransport, Reason: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.Debugf("translation: error body: %s", snippet)
		return stream.Result{}, &Failure{Kind: ErrTransport, Reason: fmt.Sprintf("request failed with status %d", resp.StatusCode)}
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
		return stream.Result{}, &Failure{Kind: ErrProtocol, Reason: fmt.Sprintf("unexpected content type %q", ct)}
	}

	res, err := stream.Consume(ctx, resp.Body, stream.NewParser())
	if res.Skipped > 0 {
		logger.Debugf("translation: skipped %d malformed frames", res.Skipped)
	}
	if err != nil {
		if errors.Is(err, stream.ErrTimeout) {
			return res, &Failure{Kind: ErrStreamTimeout, Reason: fmt.Sprintf("no complete result within %v", t.cfg.Timeout), Err: err}
		}
		return res, &Failure{Kind: ErrTransport, Reason: "stream interrupted", Err: err}
	}

	switch res.State {
	case stream.StateAuthRejected:
		return res, &Failure{Kind: ErrAuthRejected, Reason: res.Reason}
	case stream.StateProtocolFailure:
		return res, &Failure{Kind: ErrProtocol, Reason: res.Reason}
	}
	return res, nil
}

func (t *Translator) applyHeaders(req *http.Request, token tokenstore.Token) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")
	req.Header.Set("Cache-Control", "no-cache")
	if t.cfg.Origin != "" {
		req.Header.Set("Origin", t.cfg.Origin)
	}
	if t.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", t.cfg.UserAgent)
	}
	if token != "" {
		req.Header.Set(t.cfg.TokenHeader, string(token))
	}
}
