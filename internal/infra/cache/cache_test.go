package cache_test

import (
	"testing"
	"time"

	"github.com/DharmikCH/altscore-bfa-go/internal/infra/cache"
)

func TestInMemory_RoundTrip(t *testing.T) {
	c := cache.New[string](time.Minute)

	c.Set("sess-1", "alpha")
	c.Set("sess-2", "beta")

	got, ok := c.Get("sess-1")
	if !ok || got != "alpha" {
		t.Errorf("expected (alpha, true), got (%q, %v)", got, ok)
	}
	if _, ok := c.Get("sess-3"); ok {
		t.Error("expected miss for an unknown key")
	}
	if c.Len() != 2 {
		t.Errorf("expected 2 live entries, got %d", c.Len())
	}
}

func TestInMemory_DeleteIsImmediate(t *testing.T) {
	c := cache.New[int](time.Minute)

	c.Set("sess-1", 42)
	c.Delete("sess-1")

	if _, ok := c.Get("sess-1"); ok {
		t.Error("expected deleted entry to be gone")
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}
}

func TestInMemory_ExpiryWithoutJanitor(t *testing.T) {
	// Reads must refuse expired entries even before the janitor sweeps;
	// the session 401 cannot wait for a background tick.
	c := cache.New[string](30 * time.Millisecond)

	c.Set("sess-1", "alpha")
	time.Sleep(60 * time.Millisecond)

	if _, ok := c.Get("sess-1"); ok {
		t.Error("expected expired entry to miss")
	}
	if c.Len() != 0 {
		t.Errorf("Len must skip expired entries, got %d", c.Len())
	}
}

func TestInMemory_SetRefreshesTTL(t *testing.T) {
	c := cache.New[string](50 * time.Millisecond)

	c.Set("sess-1", "alpha")
	time.Sleep(30 * time.Millisecond)
	c.Set("sess-1", "beta")
	time.Sleep(30 * time.Millisecond)

	got, ok := c.Get("sess-1")
	if !ok || got != "beta" {
		t.Errorf("rewrite must restart the TTL, got (%q, %v)", got, ok)
	}
}
