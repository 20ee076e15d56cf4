package translation

import "strings"

// TranslationCache stores outcomes in memory for batch operations
type TranslationCache struct {
	outcomes map[string]Outcome
}

// NewTranslationCache creates a new translation cache
func NewTranslationCache() *TranslationCache {
	return &TranslationCache{
		outcomes: make(map[string]Outcome),
	}
}

// Add caches a successful outcome. Failures are not cached so that a
// later occurrence of the same query gets another chance.
func (tc *TranslationCache) Add(query string, outcome Outcome) {
	if !outcome.OK() {
		return
	}
	tc.outcomes[cacheKey(query)] = outcome
}

// Get retrieves an outcome from the cache
func (tc *TranslationCache) Get(query string) (Outcome, bool) {
	outcome, ok := tc.outcomes[cacheKey(query)]
	return outcome, ok
}

// Len returns the number of cached outcomes
func (tc *TranslationCache) Len() int {
	return len(tc.outcomes)
}

func cacheKey(query string) string {
	return strings.TrimSpace(query)
}
