package cache

import (
	"testing"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCache(t *testing.T) {
	t.Run("miss on empty cache", func(t *testing.T) {
		c := openTestCache(t)
		_, hit, err := c.Get("src/index.ts", "hash1", "opts1")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if hit {
			t.Error("expected miss on empty cache")
		}
	})

	t.Run("put then get", func(t *testing.T) {
		c := openTestCache(t)
		if err := c.Put("src/index.ts", "hash1", "opts1", "output1"); err != nil {
			t.Fatalf("Put: %v", err)
		}

		output, hit, err := c.Get("src/index.ts", "hash1", "opts1")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if !hit || output != "output1" {
			t.Errorf("expected hit with output1, got hit=%v output=%q", hit, output)
		}
	})

	t.Run("content change misses", func(t *testing.T) {
		c := openTestCache(t)
		if err := c.Put("src/index.ts", "hash1", "opts1", "output1"); err != nil {
			t.Fatalf("Put: %v", err)
		}
		if _, hit, _ := c.Get("src/index.ts", "hash2", "opts1"); hit {
			t.Error("changed content should miss")
		}
	})

	t.Run("options change misses", func(t *testing.T) {
		c := openTestCache(t)
		if err := c.Put("src/index.ts", "hash1", "opts1", "output1"); err != nil {
			t.Fatalf("Put: %v", err)
		}
		if _, hit, _ := c.Get("src/index.ts", "hash1", "opts2"); hit {
			t.Error("changed options should miss")
		}
	})

	t.Run("put replaces previous entry", func(t *testing.T) {
		c := openTestCache(t)
		if err := c.Put("src/index.ts", "hash1", "opts1", "old"); err != nil {
			t.Fatalf("Put: %v", err)
		}
		if err := c.Put("src/index.ts", "hash2", "opts1", "new"); err != nil {
			t.Fatalf("Put: %v", err)
		}

		output, hit, err := c.Get("src/index.ts", "hash2", "opts1")
		if err != nil || !hit || output != "new" {
			t.Errorf("expected replaced entry, got hit=%v output=%q err=%v", hit, output, err)
		}

		stats, err := c.GetStats()
		if err != nil {
			t.Fatalf("GetStats: %v", err)
		}
		if stats.ResultCount != 1 {
			t.Errorf("expected 1 result after replace, got %d", stats.ResultCount)
		}
	})

	t.Run("clear", func(t *testing.T) {
		c := openTestCache(t)
		if err := c.Put("a.ts", "h", "o", "x"); err != nil {
			t.Fatalf("Put: %v", err)
		}
		if err := c.Clear(); err != nil {
			t.Fatalf("Clear: %v", err)
		}

		stats, err := c.GetStats()
		if err != nil {
			t.Fatalf("GetStats: %v", err)
		}
		if stats.ResultCount != 0 {
			t.Errorf("expected empty cache, got %d results", stats.ResultCount)
		}
	})

	t.Run("persists across reopen", func(t *testing.T) {
		dir := t.TempDir()
		c, err := Open(dir)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if err := c.Put("a.ts", "h", "o", "x"); err != nil {
			t.Fatalf("Put: %v", err)
		}
		c.Close()

		reopened, err := Open(dir)
		if err != nil {
			t.Fatalf("reopen: %v", err)
		}
		defer reopened.Close()

		output, hit, err := reopened.Get("a.ts", "h", "o")
		if err != nil || !hit || output != "x" {
			t.Errorf("entry should survive reopen, got hit=%v output=%q err=%v", hit, output, err)
		}
	})
}
