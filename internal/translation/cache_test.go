package translation

import "testing"

func TestTranslationCache(t *testing.T) {
	cache := NewTranslationCache()

	// Test empty cache
	if _, found := cache.Get("hello"); found {
		t.Error("Expected not found in empty cache")
	}

	ok := Outcome{Kind: KindText, Text: "你好"}
	cache.Add("hello", ok)

	got, found := cache.Get("  hello ")
	if !found {
		t.Fatal("Expected to find 'hello' in cache")
	}
	if got.Text != "你好" {
		t.Errorf("Expected '你好', got '%s'", got.Text)
	}

	// Failures are not cached
	cache.Add("broken", Outcome{Kind: KindFailure, Failure: &Failure{Kind: ErrTransport}})
	if _, found := cache.Get("broken"); found {
		t.Error("Failure outcome should not be cached")
	}

	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
}
