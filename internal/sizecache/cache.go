package sizecache

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/vvka-141/lfm/internal/files/filesystem"
	"github.com/vvka-141/lfm/internal/logging"
	"github.com/vvka-141/lfm/pkg/lfm"
)

// Result is the outcome of a size measurement.
//
// Known is false when the size could not be determined; Bytes is then 0 and
// Err carries the cause. An authoritative zero (empty directory, symlink,
// excluded root) has Known set.
type Result struct {
	Bytes uint64
	Known bool
	Err   error
}

// Stats counts cache activity since the Cache was created.
type Stats struct {
	Hits   int // directory lookups answered from the store
	Walks  int // full subtree walks
	Errors int // measurements that failed and collapsed to zero
}

// Options configures a Cache.
type Options struct {
	// ExcludedRoots are canonical paths that are sized as zero and never
	// traversed. Defaults to lfm.DefaultExcludedRoots when nil.
	ExcludedRoots []string

	// Logger receives verbose diagnostics. Defaults to a NullLogger.
	Logger lfm.Logger
}

// Cache answers size queries, caching directory totals keyed by canonical
// path and validated by directory mtime.
type Cache struct {
	gw       filesystem.Gateway
	excluded map[string]struct{}
	logger   lfm.Logger

	mu    sync.Mutex
	store *Store
	dirty bool
	stats Stats

	group singleflight.Group
}

// New creates a Cache over gw backed by store. A nil store starts empty.
func New(gw filesystem.Gateway, store *Store, opts Options) *Cache {
	if store == nil {
		store = NewStore()
	}
	roots := opts.ExcludedRoots
	if roots == nil {
		roots = lfm.DefaultExcludedRoots
	}
	excluded := make(map[string]struct{}, len(roots))
	for _, r := range roots {
		excluded[filepath.Clean(r)] = struct{}{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Cache{
		gw:       gw,
		excluded: excluded,
		logger:   logger,
		store:    store,
	}
}

// SizeOf returns the size in bytes of path. It never fails: any error
// collapses to 0.
func (c *Cache) SizeOf(path string) uint64 {
	return c.Measure(path).Bytes
}

// Measure sizes path. Regular files report their length, directories the
// sum of all regular files below them. Symlinks, special files and excluded
// roots report an authoritative zero.
func (c *Cache) Measure(path string) Result {
	info, err := c.gw.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.forget(path)
		}
		return c.failed(path, err)
	}

	mode := info.Mode()
	switch {
	case mode&fs.ModeSymlink != 0, filesystem.IsSpecialMode(mode):
		return Result{Known: true}
	case c.isExcluded(path):
		return Result{Known: true}
	case mode.IsRegular():
		return Result{Bytes: uint64(info.Size()), Known: true}
	}

	return c.measureDir(path, info.ModTime())
}

func (c *Cache) measureDir(path string, mt time.Time) Result {
	c.mu.Lock()
	if e, ok := c.store.Get(path); ok && e.Fresh(mt) {
		c.stats.Hits++
		c.mu.Unlock()
		c.logger.Verbose("size cache hit: %s", path)
		return Result{Bytes: e.Size, Known: true}
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(path, func() (interface{}, error) {
		c.logger.Verbose("size cache miss, walking: %s", path)
		sum, err := c.walk(path)

		c.mu.Lock()
		defer c.mu.Unlock()
		c.stats.Walks++
		if err != nil {
			return uint64(0), err
		}
		c.store.Put(Entry{Path: path, Size: sum, ModTime: mt})
		c.dirty = true
		return sum, nil
	})
	if err != nil {
		return c.failed(path, err)
	}
	return Result{Bytes: v.(uint64), Known: true}
}

// walk sums the regular files below dir. Symlinks and special files are
// skipped; excluded roots are not descended into.
func (c *Cache) walk(dir string) (uint64, error) {
	children, err := c.gw.ListChildren(dir)
	if err != nil {
		return 0, err
	}

	var total uint64
	for _, child := range children {
		p := filepath.Join(dir, child.Name)
		switch {
		case child.IsSymlink():
			continue
		case child.IsDir():
			if c.isExcluded(p) {
				continue
			}
			sub, err := c.walk(p)
			if err != nil {
				return 0, err
			}
			total += sub
		case child.IsRegular():
			n, err := c.gw.FileSize(p)
			if err != nil {
				return 0, fmt.Errorf("failed to size %s: %w", p, err)
			}
			total += n
		}
	}
	return total, nil
}

func (c *Cache) failed(path string, err error) Result {
	c.mu.Lock()
	c.stats.Errors++
	c.mu.Unlock()
	c.logger.Verbose("size of %s unknown: %v", path, err)
	return Result{Err: err}
}

// forget lazily drops the entry of a vanished path.
func (c *Cache) forget(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store.Delete(path) {
		c.dirty = true
	}
}

func (c *Cache) isExcluded(path string) bool {
	_, ok := c.excluded[filepath.Clean(path)]
	return ok
}

// Snapshot returns a copy of the current store, suitable for Save.
func (c *Cache) Snapshot() *Store {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Clone()
}

// Dirty reports whether the store changed since creation or the last Flush.
func (c *Cache) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

// Stats returns a snapshot of the activity counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Flush saves the store to path if it changed since the last flush.
func (c *Cache) Flush(path string) error {
	c.mu.Lock()
	if !c.dirty {
		c.mu.Unlock()
		return nil
	}
	snapshot := c.store.Clone()
	c.dirty = false
	c.mu.Unlock()

	if err := Save(path, snapshot); err != nil {
		c.mu.Lock()
		c.dirty = true
		c.mu.Unlock()
		return err
	}
	c.logger.Verbose("size cache saved: %s (%d entries)", path, snapshot.Len())
	return nil
}
