package subsetcache

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	dir := t.TempDir()
	c, err := New(Config{Dir: dir, Prefix: "t_", MaxBytes: 1 << 20}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestCacheMissThenHit(t *testing.T) {
	c := newTestCache(t)

	h, err := c.Get("k1", 4)
	if err != nil {
		t.Fatalf("Get on empty cache: %v", err)
	}
	if h != nil {
		t.Fatalf("expected miss, got a handle")
	}

	want := []byte{1, 2, 3, 4}
	if err := c.Put("k1", 4, func(f *os.File) error {
		_, err := f.Write(want)
		return err
	}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	h, err = c.Get("k1", 4)
	if err != nil {
		t.Fatalf("Get after Put: %v", err)
	}
	if h == nil {
		t.Fatalf("expected hit after Put")
	}
	defer h.Close()

	got, err := h.ReadAt(0, 4)
	if err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d: got %d want %d", i, got[i], want[i])
		}
	}
}

func TestCachePurge(t *testing.T) {
	c := newTestCache(t)

	if err := c.Put("k2", 2, func(f *os.File) error {
		_, err := f.Write([]byte{9, 9})
		return err
	}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := c.Purge("k2"); err != nil {
		t.Fatalf("Purge: %v", err)
	}

	h, err := c.Get("k2", 2)
	if err != nil {
		t.Fatalf("Get after Purge: %v", err)
	}
	if h != nil {
		h.Close()
		t.Fatalf("expected miss after Purge")
	}
}

func TestCacheCorruptionIsPurged(t *testing.T) {
	c := newTestCache(t)

	if err := c.Put("k3", 4, func(f *os.File) error {
		_, err := f.Write([]byte{1, 2, 3, 4})
		return err
	}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Truncate the entry out from under the cache, simulating corruption
	// (spec.md §4.5 scenario 5).
	if err := os.Truncate(filepath.Join(c.cfg.Dir, "k3"), 3); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	h, err := c.Get("k3", 4)
	if err != nil {
		t.Fatalf("Get on corrupt entry: %v", err)
	}
	if h != nil {
		h.Close()
		t.Fatalf("expected miss on size mismatch")
	}
	if _, err := os.Stat(filepath.Join(c.cfg.Dir, "k3")); !os.IsNotExist(err) {
		t.Fatalf("expected corrupt entry to be unlinked, stat err = %v", err)
	}
}

func TestCachePutSecondWriterNoOp(t *testing.T) {
	c := newTestCache(t)

	calls := 0
	writer := func(f *os.File) error {
		calls++
		_, err := f.Write([]byte{7, 7, 7})
		return err
	}

	if err := c.Put("k4", 3, writer); err != nil {
		t.Fatalf("first Put: %v", err)
	}
	if err := c.Put("k4", 3, writer); err != nil {
		t.Fatalf("second Put: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected writer invoked once (entry already present), got %d", calls)
	}
}

func TestCacheEviction(t *testing.T) {
	dir := t.TempDir()
	c, err := New(Config{Dir: dir, Prefix: "", MaxBytes: 10}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	payload := make([]byte, 8)
	for i := 0; i < 4; i++ {
		key := string(rune('a' + i))
		if err := c.Put(key, int64(len(payload)), func(f *os.File) error {
			_, err := f.Write(payload)
			return err
		}); err != nil {
			t.Fatalf("Put %s: %v", key, err)
		}
	}

	var total int64
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".lock" {
			continue
		}
		info, _ := e.Info()
		total += info.Size()
	}
	if total > c.cfg.MaxBytes {
		t.Fatalf("expected eviction to bring total under budget, got %d bytes (cap %d)", total, c.cfg.MaxBytes)
	}
}
