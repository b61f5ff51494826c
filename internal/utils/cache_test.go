package utils

import (
	"testing"
	"time"
)

func TestPageCacheTTL(t *testing.T) {
	cache, err := NewPageCache(4)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}

	cache.Set("k", "v", time.Minute)
	if got := cache.Get("k"); got != "v" {
		t.Errorf("expected cached value, got %v", got)
	}

	cache.Set("expired", "v", -time.Second)
	if got := cache.Get("expired"); got != nil {
		t.Errorf("expected expired entry to be gone, got %v", got)
	}

	cache.Delete("k")
	if got := cache.Get("k"); got != nil {
		t.Errorf("expected deleted entry to be gone, got %v", got)
	}
}
