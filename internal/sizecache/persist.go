package sizecache

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/natefinch/atomic"

	"github.com/vvka-141/lfm/pkg/lfm"
)

// minEntrySize is the encoded size of an entry with an empty path.
const minEntrySize = 8 + 8 + 8

// errTruncated is returned when a declared count or length runs past EOF.
var errTruncated = errors.New("truncated cache file")

// Modification times outside this range have no int64 nanosecond encoding.
var (
	minModTime = time.Unix(0, math.MinInt64)
	maxModTime = time.Unix(0, math.MaxInt64)
)

// Load reads a store from the cache file at path.
//
// A missing file yields an empty store and no error. An unreadable or
// malformed file yields an empty store together with an error wrapping
// lfm.ErrCachePersistence; callers log it and carry on.
//
// Load never creates the lock file. It takes a shared lock only when a
// writer has already created one. Save replaces the file by rename, so an
// unlocked read still sees one complete version.
func Load(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewStore(), nil
		}
		return NewStore(), fmt.Errorf("%w: %v", lfm.ErrCachePersistence, err)
	}

	lock := flock.New(lockPath(path), flock.SetFlag(os.O_RDONLY))
	if err := lock.RLock(); err == nil {
		defer lock.Unlock()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return NewStore(), fmt.Errorf("%w: %v", lfm.ErrCachePersistence, err)
	}

	store, err := Decode(data)
	if err != nil {
		return NewStore(), fmt.Errorf("%w: %s: %v", lfm.ErrCachePersistence, path, err)
	}
	return store, nil
}

// Save writes the full store to path atomically, creating the parent
// directory if needed. Concurrent writers are serialized through an
// advisory lock on a sibling ".lock" file.
func Save(path string, store *Store) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %v", lfm.ErrCachePersistence, err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, store); err != nil {
		return fmt.Errorf("%w: %v", lfm.ErrCachePersistence, err)
	}

	lock := flock.New(lockPath(path))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("%w: failed to lock %s: %v", lfm.ErrCachePersistence, path, err)
	}
	defer lock.Unlock()

	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("%w: %v", lfm.ErrCachePersistence, err)
	}
	return nil
}

// Remove deletes the cache file and its lock file. A missing file is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", lfm.ErrCachePersistence, err)
	}
	if err := os.Remove(lockPath(path)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", lfm.ErrCachePersistence, err)
	}
	return nil
}

func lockPath(path string) string {
	return path + ".lock"
}

// Encode serializes the store in path order. Entries whose modification
// time cannot be encoded are left out and get measured again next run.
func Encode(w io.Writer, store *Store) error {
	var entries []Entry
	for _, e := range store.Entries() {
		if encodable(e.ModTime) {
			entries = append(entries, e)
		}
	}

	buf := make([]byte, 8)
	put := func(v uint64) error {
		binary.LittleEndian.PutUint64(buf, v)
		_, err := w.Write(buf)
		return err
	}

	if err := put(uint64(len(entries))); err != nil {
		return err
	}
	for _, e := range entries {
		if err := put(uint64(len(e.Path))); err != nil {
			return err
		}
		if _, err := io.WriteString(w, e.Path); err != nil {
			return err
		}
		if err := put(e.Size); err != nil {
			return err
		}
		if err := put(uint64(e.ModTime.UnixNano())); err != nil {
			return err
		}
	}
	return nil
}

func encodable(t time.Time) bool {
	return !t.Before(minModTime) && !t.After(maxModTime)
}

// Decode parses a serialized store. It rejects input whose entry count or
// any declared path length would read past the end of data.
func Decode(data []byte) (*Store, error) {
	r := reader{data: data}

	count, ok := r.uint64()
	if !ok {
		return nil, errTruncated
	}
	if count > uint64(r.remaining()/minEntrySize) {
		return nil, fmt.Errorf("%w: %d entries declared, %d bytes left", errTruncated, count, r.remaining())
	}

	store := NewStore()
	for i := uint64(0); i < count; i++ {
		pathLen, ok := r.uint64()
		if !ok {
			return nil, fmt.Errorf("%w: entry %d", errTruncated, i)
		}
		if pathLen > math.MaxInt32 || int(pathLen) > r.remaining() {
			return nil, fmt.Errorf("%w: entry %d declares a %d byte path", errTruncated, i, pathLen)
		}
		path := string(r.bytes(int(pathLen)))

		size, ok := r.uint64()
		if !ok {
			return nil, fmt.Errorf("%w: entry %d", errTruncated, i)
		}
		nanos, ok := r.uint64()
		if !ok {
			return nil, fmt.Errorf("%w: entry %d", errTruncated, i)
		}

		store.Put(Entry{
			Path:    path,
			Size:    size,
			ModTime: time.Unix(0, int64(nanos)),
		})
	}

	if r.remaining() != 0 {
		return nil, fmt.Errorf("%d trailing bytes after %d entries", r.remaining(), count)
	}
	return store, nil
}

// reader is a bounds-checked cursor over a byte slice.
type reader struct {
	data []byte
	off  int
}

func (r *reader) remaining() int {
	return len(r.data) - r.off
}

func (r *reader) uint64() (uint64, bool) {
	if r.remaining() < 8 {
		return 0, false
	}
	v := binary.LittleEndian.Uint64(r.data[r.off:])
	r.off += 8
	return v, true
}

func (r *reader) bytes(n int) []byte {
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}
