package testutil

import (
	"context"
	"fmt"
	"sync"

	"codeberg.org/snonux/fanyi/internal/tokenstore"
)

// CallLog records calls across several mocks so tests can assert ordering.
type CallLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *CallLog) add(call string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
}

// Calls returns a copy of the recorded calls.
func (l *CallLog) Calls() []string {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

// MockProvider mocks a token provider
type MockProvider struct {
	// Tokens are returned in order; the last one repeats.
	Tokens []tokenstore.Token
	Err    error
	Log    *CallLog
	Seeds  []string
}

// Acquire mocks minting a token
func (m *MockProvider) Acquire(ctx context.Context, seed string) (tokenstore.Token, error) {
	m.Seeds = append(m.Seeds, seed)
	m.Log.add("acquire")

	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Tokens) == 0 {
		return "", fmt.Errorf("mock provider has no tokens")
	}

	i := len(m.Seeds) - 1
	if i >= len(m.Tokens) {
		i = len(m.Tokens) - 1
	}
	return m.Tokens[i], nil
}

// RecordingStore wraps a token store and records every call
type RecordingStore struct {
	tokenstore.Store
	Log *CallLog
}

// NewRecordingStore returns an in-memory store that records its calls,
// optionally seeded with a token.
func NewRecordingStore(log *CallLog, seed tokenstore.Token) *RecordingStore {
	store := tokenstore.NewMemoryStore()
	if seed != "" {
		store.Put(seed)
	}
	return &RecordingStore{Store: store, Log: log}
}

func (r *RecordingStore) Get() (tokenstore.Token, bool) {
	r.Log.add("get")
	return r.Store.Get()
}

func (r *RecordingStore) Put(t tokenstore.Token) error {
	r.Log.add("put:" + string(t))
	return r.Store.Put(t)
}

func (r *RecordingStore) Invalidate() error {
	r.Log.add("invalidate")
	return r.Store.Invalidate()
}
