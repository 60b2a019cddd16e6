package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

const maxSymlinkHops = 40

// memoryFileInfo implements fs.FileInfo for in-memory nodes
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.mode.IsDir() }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryNode struct {
	mode    fs.FileMode
	content []byte
	modTime time.Time
	target  string
}

// MemoryGateway implements Gateway over an in-memory tree rooted at "/".
//
// Like a real filesystem, adding or removing a child bumps the parent
// directory's mtime, while rewriting a file's content only touches the file.
// Every mutation advances a deterministic clock by one second.
type MemoryGateway struct {
	mu        sync.Mutex
	nodes     map[string]*memoryNode
	clock     time.Time
	denied    map[string]bool
	listCalls map[string]int
}

// NewMemoryGateway creates an in-memory filesystem holding only the root directory.
func NewMemoryGateway() *MemoryGateway {
	clock := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &MemoryGateway{
		nodes: map[string]*memoryNode{
			"/": {mode: fs.ModeDir | 0o755, modTime: clock},
		},
		clock:     clock,
		denied:    make(map[string]bool),
		listCalls: make(map[string]int),
	}
}

// cleanPath normalizes p to a slash-separated absolute virtual path.
func cleanPath(p string) string {
	p = filepath.ToSlash(p)
	if !path.IsAbs(p) {
		p = "/" + p
	}
	return path.Clean(p)
}

func (m *MemoryGateway) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

// touchParent bumps the mtime of p's parent directory.
func (m *MemoryGateway) touchParent(p string) {
	if p == "/" {
		return
	}
	if parent, ok := m.nodes[path.Dir(p)]; ok {
		parent.modTime = m.tick()
	}
}

func (m *MemoryGateway) ensureDir(p string) {
	if _, ok := m.nodes[p]; ok {
		return
	}
	m.ensureDir(path.Dir(p))
	m.nodes[p] = &memoryNode{mode: fs.ModeDir | 0o755, modTime: m.tick()}
	m.touchParent(p)
}

func (m *MemoryGateway) put(p string, node *memoryNode) {
	p = cleanPath(p)
	m.ensureDir(path.Dir(p))
	node.modTime = m.tick()
	m.nodes[p] = node
	m.touchParent(p)
}

// AddDir creates a directory and any missing parents.
func (m *MemoryGateway) AddDir(p string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureDir(cleanPath(p))
}

// AddFile creates or replaces a regular file with the given content.
func (m *MemoryGateway) AddFile(p string, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(p, &memoryNode{mode: 0o644, content: []byte(content)})
}

// AddSymlink creates a symbolic link at p pointing to target.
// Relative targets are resolved against p's parent directory.
func (m *MemoryGateway) AddSymlink(p, target string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(p, &memoryNode{mode: fs.ModeSymlink | 0o777, target: filepath.ToSlash(target)})
}

// AddSpecial creates a special file (pipe, socket, device) with the given type bits.
func (m *MemoryGateway) AddSpecial(p string, typ fs.FileMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(p, &memoryNode{mode: typ | 0o644})
}

// WriteFile rewrites an existing file in place. Only the file's own mtime
// changes; its parent directory is left untouched.
func (m *MemoryGateway) WriteFile(p string, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, node, err := m.resolve("write", p, true)
	if err != nil {
		return err
	}
	if !node.mode.IsRegular() {
		return fmt.Errorf("not a regular file: %s", p)
	}
	node.content = []byte(content)
	node.modTime = m.tick()
	return nil
}

// SetModTime overrides the modification time of p.
func (m *MemoryGateway) SetModTime(p string, t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if node, ok := m.nodes[cleanPath(p)]; ok {
		node.modTime = t
	}
}

// Deny makes ListChildren on p fail with a permission error.
func (m *MemoryGateway) Deny(p string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.denied[cleanPath(p)] = true
}

// ListCalls returns how many times ListChildren was called for p.
func (m *MemoryGateway) ListCalls(p string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls[cleanPath(p)]
}

// TotalListCalls returns the number of ListChildren calls across all paths.
func (m *MemoryGateway) TotalListCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.listCalls {
		total += n
	}
	return total
}

// ResetCounters clears all call counters.
func (m *MemoryGateway) ResetCounters() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls = make(map[string]int)
}

func notExist(op, p string) error {
	return &fs.PathError{Op: op, Path: p, Err: fs.ErrNotExist}
}

// resolve walks p component by component. Symlinks in intermediate
// components are always followed; the last component is followed only if
// followLast is set.
func (m *MemoryGateway) resolve(op, p string, followLast bool) (string, *memoryNode, error) {
	p = cleanPath(p)
	original := p

	for hops := 0; hops < maxSymlinkHops; hops++ {
		parts := []string{}
		if p != "/" {
			parts = strings.Split(strings.TrimPrefix(p, "/"), "/")
		}

		current := "/"
		restarted := false
		for i, part := range parts {
			next := path.Join(current, part)
			node, ok := m.nodes[next]
			if !ok {
				return "", nil, notExist(op, original)
			}
			last := i == len(parts)-1
			if node.mode&fs.ModeSymlink != 0 && (!last || followLast) {
				target := node.target
				if !path.IsAbs(target) {
					target = path.Join(current, target)
				}
				p = path.Join(append([]string{target}, parts[i+1:]...)...)
				restarted = true
				break
			}
			if !last && !node.mode.IsDir() {
				return "", nil, notExist(op, original)
			}
			current = next
		}

		if !restarted {
			return current, m.nodes[current], nil
		}
	}

	return "", nil, &fs.PathError{Op: op, Path: original, Err: errors.New("too many levels of symbolic links")}
}

func (m *MemoryGateway) info(p string, node *memoryNode) FileInfo {
	size := int64(len(node.content))
	if node.mode&fs.ModeSymlink != 0 {
		size = int64(len(node.target))
	}
	return &memoryFileInfo{
		name:    path.Base(p),
		size:    size,
		mode:    node.mode,
		modTime: node.modTime,
	}
}

func (m *MemoryGateway) ListChildren(p string) ([]Child, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	resolved, node, err := m.resolve("open", p, true)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	m.listCalls[resolved]++

	if !node.mode.IsDir() {
		return nil, fmt.Errorf("failed to read directory: %s: not a directory", p)
	}
	if m.denied[resolved] {
		return nil, fmt.Errorf("failed to read directory: %w", &fs.PathError{Op: "open", Path: p, Err: fs.ErrPermission})
	}

	var children []Child
	for key, child := range m.nodes {
		if key == resolved || path.Dir(key) != resolved {
			continue
		}
		children = append(children, Child{Name: path.Base(key), Type: child.mode.Type()})
	}
	sort.Slice(children, func(i, j int) bool {
		return children[i].Name < children[j].Name
	})
	return children, nil
}

func (m *MemoryGateway) Stat(p string) (FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	resolved, node, err := m.resolve("stat", p, true)
	if err != nil {
		return nil, err
	}
	return m.info(resolved, node), nil
}

func (m *MemoryGateway) Lstat(p string) (FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	resolved, node, err := m.resolve("lstat", p, false)
	if err != nil {
		return nil, err
	}
	return m.info(resolved, node), nil
}

func (m *MemoryGateway) Exists(p string) bool {
	_, err := m.Stat(p)
	return err == nil
}

func (m *MemoryGateway) ModTime(p string) (time.Time, error) {
	info, err := m.Stat(p)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

func (m *MemoryGateway) IsSymlink(p string) bool {
	info, err := m.Lstat(p)
	if err != nil {
		return false
	}
	return info.Mode()&fs.ModeSymlink != 0
}

func (m *MemoryGateway) IsSpecial(p string) bool {
	info, err := m.Lstat(p)
	if err != nil {
		return false
	}
	return IsSpecialMode(info.Mode())
}

func (m *MemoryGateway) FileSize(p string) (uint64, error) {
	info, err := m.Stat(p)
	if err != nil {
		return 0, err
	}
	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("not a regular file: %s", p)
	}
	return uint64(info.Size()), nil
}

func (m *MemoryGateway) Canonicalize(p string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	resolved, _, err := m.resolve("canonicalize", p, true)
	if err != nil {
		return "", err
	}
	return resolved, nil
}

func (m *MemoryGateway) Mkdir(p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p = cleanPath(p)
	if _, ok := m.nodes[p]; ok {
		return &fs.PathError{Op: "mkdir", Path: p, Err: fs.ErrExist}
	}
	parent, ok := m.nodes[path.Dir(p)]
	if !ok || !parent.mode.IsDir() {
		return notExist("mkdir", p)
	}
	m.nodes[p] = &memoryNode{mode: fs.ModeDir | 0o755, modTime: m.tick()}
	m.touchParent(p)
	return nil
}

func (m *MemoryGateway) Remove(p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p = cleanPath(p)
	if p == "/" {
		return &fs.PathError{Op: "remove", Path: p, Err: fs.ErrPermission}
	}
	if _, ok := m.nodes[p]; !ok {
		return notExist("remove", p)
	}
	for key := range m.nodes {
		if key == p || strings.HasPrefix(key, p+"/") {
			delete(m.nodes, key)
		}
	}
	m.touchParent(p)
	return nil
}
