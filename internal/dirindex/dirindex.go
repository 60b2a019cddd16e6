// Package dirindex builds the ordered entry list shown for a directory.
package dirindex

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vvka-141/lfm/internal/files/filesystem"
	"github.com/vvka-141/lfm/pkg/lfm"
)

// Entry is one row of a directory listing.
//
// Path is the absolute path of the row: the listed directory's canonical
// path joined with the child's name. The parent marker is a synthetic entry
// named ".." whose Path is the canonical path of the listed directory's
// parent. IsDir is a listing-time hint for ordering and decoration;
// navigation re-checks the target.
type Entry struct {
	Path       string
	Name       string
	IsParent   bool
	IsDir      bool
	LinkTarget string
}

// Options controls which children are listed.
type Options struct {
	// HideDotfiles omits children whose name starts with ".".
	HideDotfiles bool
}

// Index lists directories through a filesystem gateway.
type Index struct {
	gw   filesystem.Gateway
	opts Options
}

// New creates an Index over gw.
func New(gw filesystem.Gateway, opts Options) *Index {
	return &Index{gw: gw, opts: opts}
}

// List returns the entries of dir: a parent marker first unless dir is the
// filesystem root, then directories, then everything else, each group
// sorted by name.
//
// On enumeration failure List returns no entries at all together with an
// error wrapping lfm.ErrEnumerationFailed.
func (x *Index) List(dir string) ([]Entry, error) {
	children, err := x.gw.ListChildren(dir)
	if err != nil {
		return []Entry{}, fmt.Errorf("%w: %s: %v", lfm.ErrEnumerationFailed, dir, err)
	}

	entries := make([]Entry, 0, len(children)+1)
	if !filesystem.IsRoot(dir) {
		entries = append(entries, ParentOf(dir))
	}

	rows := make([]Entry, 0, len(children))
	for _, child := range children {
		if x.opts.HideDotfiles && strings.HasPrefix(child.Name, ".") {
			continue
		}
		rows = append(rows, x.entryFor(dir, child))
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].IsDir != rows[j].IsDir {
			return rows[i].IsDir
		}
		return rows[i].Name < rows[j].Name
	})

	return append(entries, rows...), nil
}

// entryFor builds the row for a child of dir. A symlink keeps its own path
// so the size cache sees the link rather than its target; LinkTarget holds
// the resolved target, empty when the link dangles.
func (x *Index) entryFor(dir string, child filesystem.Child) Entry {
	e := Entry{
		Path:  filepath.Join(dir, child.Name),
		Name:  child.Name,
		IsDir: child.IsDir(),
	}
	if child.IsSymlink() {
		if resolved, err := x.gw.Canonicalize(e.Path); err == nil {
			e.LinkTarget = resolved
			if info, err := x.gw.Stat(resolved); err == nil {
				e.IsDir = info.IsDir()
			}
		}
	}
	return e
}

// ParentOf returns the parent marker for dir.
func ParentOf(dir string) Entry {
	return Entry{
		Path:     filepath.Dir(filepath.Clean(dir)),
		Name:     lfm.ParentMarkerName,
		IsParent: true,
		IsDir:    true,
	}
}
