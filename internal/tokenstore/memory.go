package tokenstore

// MemoryStore keeps the token for the lifetime of the process.
type MemoryStore struct {
	token Token
	ok    bool
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get() (Token, bool) {
	return m.token, m.ok
}

func (m *MemoryStore) Put(t Token) error {
	m.token, m.ok = t, true
	return nil
}

func (m *MemoryStore) Invalidate() error {
	m.token, m.ok = "", false
	return nil
}
