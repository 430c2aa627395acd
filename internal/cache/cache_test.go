package cache

import (
	"testing"
	"time"
)

func TestResultKey(t *testing.T) {
	a := ResultKey("текст договора", "gpt-4o-mini")
	b := ResultKey("текст договора", "gpt-4o-mini")
	if a != b {
		t.Error("same inputs produced different keys")
	}
	if ResultKey("текст договора", "other-model") == a {
		t.Error("model change did not change the key")
	}
	if ResultKey("другой текст", "gpt-4o-mini") == a {
		t.Error("text change did not change the key")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("empty cache reported a hit")
	}
	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if got, found := c.Get("k"); !found || string(got) != "v" {
		t.Errorf("Get = %q, %v", got, found)
	}
	if err := c.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if _, found := c.Get("k"); found {
		t.Error("deleted key still present")
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	key := ResultKey("текст", "model")
	if err := c.Set(key, []byte("payload"), 0); err != nil {
		t.Fatal(err)
	}
	if got, found := c.Get(key); !found || string(got) != "payload" {
		t.Errorf("Get = %q, %v", got, found)
	}
}

func TestDiskCacheExpiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("v"), -time.Second); err != nil {
		t.Fatal(err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expired entry reported as hit")
	}
}

func TestLayeredCachePromotion(t *testing.T) {
	c := NewLayeredCache(time.Minute, t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	c.memory.Clear()
	if got, found := c.Get("k"); !found || string(got) != "v" {
		t.Fatalf("disk miss after memory clear: %q, %v", got, found)
	}
	if _, found := c.memory.Get("k"); !found {
		t.Error("disk hit was not promoted to memory")
	}
}
