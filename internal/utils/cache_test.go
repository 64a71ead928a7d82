package utils

import (
	"testing"
	"time"
)

func TestCacheSetGetDelete(t *testing.T) {
	c := GetCache()

	c.Set("k1", "v1", time.Minute)
	if got := c.Get("k1"); got != "v1" {
		t.Fatalf("Get(k1) = %v, want v1", got)
	}

	c.Delete("k1")
	if got := c.Get("k1"); got != nil {
		t.Fatalf("Get(k1) after Delete = %v, want nil", got)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := GetCache()

	c.Set("k2", "v2", -time.Second)
	if got := c.Get("k2"); got != nil {
		t.Fatalf("Get(k2) past TTL = %v, want nil", got)
	}
}

// Listings cache one entry per page; invalidating after a write has
// to clear every page, not only the first one.
func TestCacheDeletePrefix(t *testing.T) {
	c := GetCache()

	c.Set("feed:page:1", "a", time.Minute)
	c.Set("feed:page:2", "b", time.Minute)
	c.Set("feed:page:3", "c", time.Minute)
	c.Set("other:key", "d", time.Minute)

	c.DeletePrefix("feed:page:")

	for _, key := range []string{"feed:page:1", "feed:page:2", "feed:page:3"} {
		if got := c.Get(key); got != nil {
			t.Errorf("Get(%s) after DeletePrefix = %v, want nil", key, got)
		}
	}
	if got := c.Get("other:key"); got != "d" {
		t.Errorf("Get(other:key) = %v, want d", got)
	}
}
