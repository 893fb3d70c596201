package chat

import (
	"testing"
	"time"
)

func TestContextCache_GetSet(t *testing.T) {
	c := NewContextCache(time.Hour)

	if _, ok := c.Get("g1"); ok {
		t.Fatal("empty cache should miss")
	}

	c.Set("g1", "rendered context")
	got, ok := c.Get("g1")
	if !ok || got != "rendered context" {
		t.Errorf("Get = %q/%v, want hit", got, ok)
	}

	if _, ok := c.Get("g2"); ok {
		t.Error("other guild should miss")
	}
}

func TestContextCache_Clear(t *testing.T) {
	c := NewContextCache(time.Hour)
	c.Set("g1", "a")
	c.Set("g2", "b")

	c.Clear()

	if _, ok := c.Get("g1"); ok {
		t.Error("g1 should be gone after clear")
	}
	if _, ok := c.Get("g2"); ok {
		t.Error("g2 should be gone after clear")
	}
}

func TestContextCache_SetOverwrites(t *testing.T) {
	c := NewContextCache(time.Hour)
	c.Set("g1", "stale")
	c.Set("g1", "fresh")

	got, _ := c.Get("g1")
	if got != "fresh" {
		t.Errorf("Get = %q, want %q", got, "fresh")
	}
}
