// Package subsetcache implements the on-disk subset cache (spec.md §4.5):
// a file-locked, content-addressed cache of computed lat/lon arrays and of
// whole-variable raw data, with concurrent readers, exclusive writers,
// atomic publication via rename, LRU eviction on a byte budget, and
// zero-copy partial reads via mmap.
//
// Grounded on the teacher's in-memory ChartCache (pkg/s57/manager.go,
// pkg/s57/cache_test.go — get-or-load with a loader callback, LRU
// eviction against a byte budget, Stats()/Clear()/Remove()) generalized
// from an in-process map to an on-disk, cross-process cache. The teacher
// never persists to a shared disk cache with concurrent writers, so the
// advisory-lock protocol itself is grounded on the pack-wide
// golang.org/x/sys/unix idiom (other_examples: distri, gvisor use unix
// syscalls for locking/mmap-adjacent operations) rather than on a single
// example file.
package subsetcache

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	mmap "github.com/edsrzf/mmap-go"
	"github.com/samber/lo"
	"golang.org/x/sys/unix"

	"github.com/hyrax-data/hdf4view/internal/workerpool"
)

// Config tunes cache location, fingerprint prefix, and byte budget
// (spec.md §6 CacheDir/CachePrefix/CacheSize).
type Config struct {
	Dir      string
	Prefix   string
	MaxBytes int64
}

// DefaultConfig returns a Config pointed at the OS temp directory with no
// prefix and a 1 GiB budget.
func DefaultConfig() Config {
	return Config{
		Dir:      filepath.Join(os.TempDir(), "hdf4view-cache"),
		Prefix:   "",
		MaxBytes: 1 << 30,
	}
}

// Cache is the process-wide subset cache singleton, constructed explicitly
// and passed by reference (spec.md §9: "global singleton cache becomes an
// explicitly constructed object"). All of its state lives on disk,
// coordinated by OS advisory locks, so the Go value itself carries no
// mutable shared state beyond the worker pool used for eviction sweeps.
type Cache struct {
	cfg  Config
	pool *workerpool.Pool
}

// New validates cfg and returns a ready Cache. The directory is created if
// missing; a non-positive MaxBytes is a ConfigError (spec.md §7).
func New(cfg Config, pool *workerpool.Pool) (*Cache, error) {
	if cfg.MaxBytes <= 0 {
		return nil, &ConfigError{Reason: "MaxBytes must be positive"}
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, &ConfigError{Reason: fmt.Sprintf("cache dir %q: %v", cfg.Dir, err)}
	}
	return &Cache{cfg: cfg, pool: pool}, nil
}

func (c *Cache) path(key string) string { return filepath.Join(c.cfg.Dir, key) }
func (c *Cache) lockPath(key string) string { return filepath.Join(c.cfg.Dir, key+".lock") }

// ReadHandle owns a shared advisory lock on one cache entry and an mmap of
// its contents. Close releases both. Callers must not retain slices
// returned by ReadAt past Close.
type ReadHandle struct {
	f    *os.File
	mm   mmap.MMap
	size int64
}

// ReadAt returns the [offset, offset+length) span of the entry. When the
// caller's own hyperslab resolves to a contiguous span covering the whole
// entry (spec.md §4.5's "stride 1, whole variable" case), the returned
// slice is a direct view into the mmap with zero copies; callers that need
// to retain the data past Close must copy it themselves.
func (r *ReadHandle) ReadAt(offset, length int64) ([]byte, error) {
	if offset < 0 || length < 0 || offset+length > r.size {
		return nil, &IoError{Op: "ReadAt", Err: io.ErrUnexpectedEOF}
	}
	return r.mm[offset : offset+length], nil
}

// Size returns the entry's byte length.
func (r *ReadHandle) Size() int64 { return r.size }

// Close releases the shared lock and unmaps the entry.
func (r *ReadHandle) Close() error {
	var firstErr error
	if r.mm != nil {
		if err := r.mm.Unmap(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if r.f != nil {
		_ = unix.Flock(int(r.f.Fd()), unix.LOCK_UN)
		if err := r.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Get opens key for reading if it is present and exactly expectedBytes
// long. A size mismatch is treated as corruption: the entry is purged and
// Get reports a miss rather than an error, per spec.md §4.5 ("a cache file
// whose observed size disagrees is treated as corrupt and purged") and
// scenario 5 ("next get returns None, purges the file").
func (c *Cache) Get(key string, expectedBytes int64) (*ReadHandle, error) {
	p := c.path(key)
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &IoError{Op: "open", Err: err}
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_SH); err != nil {
		f.Close()
		return nil, &IoError{Op: "flock", Err: err}
	}

	info, err := f.Stat()
	if err != nil {
		unix.Flock(int(f.Fd()), unix.LOCK_UN)
		f.Close()
		return nil, &IoError{Op: "stat", Err: err}
	}

	if info.Size() != expectedBytes {
		unix.Flock(int(f.Fd()), unix.LOCK_UN)
		f.Close()
		_ = os.Remove(p)
		return nil, nil
	}

	if expectedBytes == 0 {
		return &ReadHandle{f: f, size: 0}, nil
	}

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		unix.Flock(int(f.Fd()), unix.LOCK_UN)
		f.Close()
		return nil, &IoError{Op: "mmap", Err: err}
	}

	return &ReadHandle{f: f, mm: mm, size: info.Size()}, nil
}

// Put invokes writer with an exclusively-locked, truncated temp file, then
// atomically publishes it under key. If key already has an entry of the
// right size by the time the lock is acquired, writer is never called
// (spec.md §4.5, scenario 6: "the other observes that the entry already
// exists after acquiring the lock and returns without writing"). Any
// failure unlinks the partial temp file before the lock is released.
func (c *Cache) Put(key string, expectedBytes int64, writer func(f *os.File) error) error {
	lockPath := c.lockPath(key)
	lockFile, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return &IoError{Op: "create lock", Err: err}
	}
	defer lockFile.Close()

	if err := unix.Flock(int(lockFile.Fd()), unix.LOCK_EX); err != nil {
		return &IoError{Op: "flock exclusive", Err: err}
	}
	defer unix.Flock(int(lockFile.Fd()), unix.LOCK_UN)

	if info, err := os.Stat(c.path(key)); err == nil && info.Size() == expectedBytes {
		return nil
	}

	tmpPath := c.path(key) + fmt.Sprintf(".tmp.%d", os.Getpid())
	tmp, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0o644)
	if err != nil {
		return &IoError{Op: "create temp", Err: err}
	}

	if err := writer(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}

	if info, err := tmp.Stat(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return &IoError{Op: "stat temp", Err: err}
	} else if info.Size() != expectedBytes {
		tmp.Close()
		os.Remove(tmpPath)
		return &IoError{Op: "size check", Err: fmt.Errorf("wrote %d bytes, expected %d", info.Size(), expectedBytes)}
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return &IoError{Op: "sync", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &IoError{Op: "close temp", Err: err}
	}
	if err := os.Rename(tmpPath, c.path(key)); err != nil {
		os.Remove(tmpPath)
		return &IoError{Op: "rename", Err: err}
	}

	c.evictIfOverBudget()
	return nil
}

// Purge best-effort unlinks key's entry under an exclusive lock.
func (c *Cache) Purge(key string) error {
	lockFile, err := os.OpenFile(c.lockPath(key), os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return &IoError{Op: "create lock", Err: err}
	}
	defer lockFile.Close()

	if err := unix.Flock(int(lockFile.Fd()), unix.LOCK_EX); err != nil {
		return &IoError{Op: "flock exclusive", Err: err}
	}
	defer unix.Flock(int(lockFile.Fd()), unix.LOCK_UN)

	if err := os.Remove(c.path(key)); err != nil && !os.IsNotExist(err) {
		return &IoError{Op: "remove", Err: err}
	}
	return nil
}

// entryInfo is one candidate for eviction.
type entryInfo struct {
	path    string
	size    int64
	modTime time.Time
}

// evictIfOverBudget walks the cache directory and, if total bytes exceed
// MaxBytes, evicts least-recently-modified entries until under budget.
// Each candidate eviction takes an exclusive, non-blocking lock and is
// skipped if it cannot be acquired immediately (spec.md §4.5 eviction:
// "skips any entry that cannot be locked without blocking"). The sweep
// itself runs synchronously on the calling goroutine but fans the
// per-candidate lock-and-unlink attempts out across the worker pool when
// one is configured, so many stale entries can be reclaimed concurrently.
func (c *Cache) evictIfOverBudget() {
	dirEntries, err := os.ReadDir(c.cfg.Dir)
	if err != nil {
		return
	}

	entries := lo.FilterMap(dirEntries, func(de os.DirEntry, _ int) (entryInfo, bool) {
		if de.IsDir() || filepath.Ext(de.Name()) == ".lock" {
			return entryInfo{}, false
		}
		info, err := de.Info()
		if err != nil {
			return entryInfo{}, false
		}
		return entryInfo{
			path:    filepath.Join(c.cfg.Dir, de.Name()),
			size:    info.Size(),
			modTime: info.ModTime(),
		}, true
	})

	var total int64
	for _, e := range entries {
		total += e.size
	}
	if total <= c.cfg.MaxBytes {
		return
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].modTime.Before(entries[j].modTime) })

	var mu evictBudget
	mu.remaining = total - c.cfg.MaxBytes

	tryEvict := func(e entryInfo) {
		lockFile, err := os.OpenFile(e.path+".lock", os.O_CREATE|os.O_RDWR, 0o644)
		if err != nil {
			return
		}
		defer lockFile.Close()
		if err := unix.Flock(int(lockFile.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
			return
		}
		defer unix.Flock(int(lockFile.Fd()), unix.LOCK_UN)
		os.Remove(e.path)
	}

	if c.pool != nil {
		var tasks []func() error
		for _, e := range entries {
			if !mu.take(e.size) {
				break
			}
			e := e
			tasks = append(tasks, func() error { tryEvict(e); return nil })
		}
		c.pool.Go(tasks)
		return
	}

	for _, e := range entries {
		if !mu.take(e.size) {
			break
		}
		tryEvict(e)
	}
}

// evictBudget tracks how many more bytes need reclaiming; it is only ever
// touched from the single goroutine running evictIfOverBudget, so it needs
// no synchronization of its own.
type evictBudget struct{ remaining int64 }

func (b *evictBudget) take(size int64) bool {
	if b.remaining <= 0 {
		return false
	}
	b.remaining -= size
	return true
}
