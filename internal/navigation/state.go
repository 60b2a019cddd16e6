package navigation

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/vvka-141/lfm/internal/dirindex"
	"github.com/vvka-141/lfm/internal/files/filesystem"
	"github.com/vvka-141/lfm/pkg/lfm"
)

// Event is a discrete navigation input.
type Event int

const (
	MoveUp Event = iota
	MoveDown
	Activate
	Back
	Refresh
	Quit
)

func (e Event) String() string {
	switch e {
	case MoveUp:
		return "MoveUp"
	case MoveDown:
		return "MoveDown"
	case Activate:
		return "Activate"
	case Back:
		return "Back"
	case Refresh:
		return "Refresh"
	case Quit:
		return "Quit"
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

// Lister produces the entries of a directory.
type Lister interface {
	List(dir string) ([]dirindex.Entry, error)
}

// View is the tuple exposed to the presentation layer after every event.
type View struct {
	CurrentPath string
	Entries     []dirindex.Entry
	Selected    int
	LastError   string
}

// State is the browser's navigation state.
type State struct {
	lister Lister
	gw     filesystem.Gateway

	currentPath string
	entries     []dirindex.Entry
	selected    int
	lastError   string
	done        bool
}

// New builds the initial state for startPath. It fails with
// lfm.ErrStartupPathInvalid if the path does not resolve to a directory.
// A directory that resolves but cannot be listed is not fatal: the state
// starts empty with the enumeration error carried in LastError.
func New(lister Lister, gw filesystem.Gateway, startPath string) (State, error) {
	canonical, err := gw.Canonicalize(startPath)
	if err != nil {
		return State{}, fmt.Errorf("%w: %s: %v", lfm.ErrStartupPathInvalid, startPath, err)
	}
	info, err := gw.Stat(canonical)
	if err != nil {
		return State{}, fmt.Errorf("%w: %s: %v", lfm.ErrStartupPathInvalid, startPath, err)
	}
	if !info.IsDir() {
		return State{}, fmt.Errorf("%w: %s is not a directory", lfm.ErrStartupPathInvalid, startPath)
	}

	s := State{lister: lister, gw: gw}
	return s.enter(canonical, ""), nil
}

// Handle applies ev and returns the next state.
func (s State) Handle(ev Event) State {
	if s.done {
		return s
	}

	switch ev {
	case MoveUp:
		if n := len(s.entries); n > 0 {
			s.selected = (s.selected - 1 + n) % n
			s.lastError = ""
		}
	case MoveDown:
		if n := len(s.entries); n > 0 {
			s.selected = (s.selected + 1) % n
			s.lastError = ""
		}
	case Activate:
		return s.activate()
	case Back:
		return s.back()
	case Refresh:
		return s.refresh()
	case Quit:
		s.done = true
	}
	return s
}

func (s State) activate() State {
	target, ok := s.SelectedEntry()
	if !ok {
		return s
	}

	info, err := s.gw.Stat(target.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.lastError = fmt.Errorf("%w: %s no longer exists", lfm.ErrNotNavigable, target.Name).Error()
		return s
	case err != nil:
		s.lastError = fmt.Errorf("%w: %s: %v", lfm.ErrNotNavigable, target.Name, err).Error()
		return s
	case !info.IsDir():
		s.lastError = fmt.Errorf("%w: %s is not a directory", lfm.ErrNotNavigable, target.Name).Error()
		return s
	}

	dest, err := s.gw.Canonicalize(target.Path)
	if err != nil {
		s.lastError = fmt.Errorf("%w: %s: %v", lfm.ErrNotNavigable, target.Name, err).Error()
		return s
	}
	return s.enter(dest, "")
}

// GoTo jumps to dir, resolved against the current directory when relative.
// A target that is missing or not a directory leaves the state unchanged
// apart from LastError.
func (s State) GoTo(dir string) State {
	if s.done || dir == "" {
		return s
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(s.currentPath, dir)
	}

	dest, err := s.gw.Canonicalize(dir)
	if err != nil {
		s.lastError = fmt.Errorf("%w: %s: %v", lfm.ErrNotNavigable, dir, err).Error()
		return s
	}
	info, err := s.gw.Stat(dest)
	if err != nil {
		s.lastError = fmt.Errorf("%w: %s: %v", lfm.ErrNotNavigable, dir, err).Error()
		return s
	}
	if !info.IsDir() {
		s.lastError = fmt.Errorf("%w: %s is not a directory", lfm.ErrNotNavigable, dir).Error()
		return s
	}
	return s.enter(dest, "")
}

// back moves to the parent directory and selects the directory just left.
// Unlike activating the parent marker it also works when the current
// listing is empty because enumeration failed.
func (s State) back() State {
	if filesystem.IsRoot(s.currentPath) {
		return s
	}
	parent := filepath.Dir(s.currentPath)
	if !s.gw.Exists(parent) {
		s.lastError = fmt.Errorf("%w: %s no longer exists", lfm.ErrNotNavigable, parent).Error()
		return s
	}
	return s.enter(parent, s.currentPath)
}

// refresh reloads the current directory, keeping the selection on the same
// path when it still exists.
func (s State) refresh() State {
	keep := ""
	if e, ok := s.SelectedEntry(); ok {
		keep = e.Path
	}
	return s.enter(s.currentPath, keep)
}

// enter loads dir and makes it current. The selection moves to the entry
// whose path equals selectPath, or to the first entry.
func (s State) enter(dir, selectPath string) State {
	entries, err := s.lister.List(dir)

	s.currentPath = dir
	s.entries = entries
	s.selected = 0
	s.lastError = ""
	if err != nil {
		s.entries = nil
		s.lastError = err.Error()
		return s
	}
	if selectPath != "" {
		s = s.SelectPath(selectPath)
	}
	return s
}

// SelectPath moves the cursor to the entry with the given path, if present.
func (s State) SelectPath(path string) State {
	for i, e := range s.entries {
		if !e.IsParent && e.Path == path {
			s.selected = i
			break
		}
	}
	return s
}

// WithError returns s carrying err as its user-visible message. Used for
// failures of actions performed outside the state machine, such as
// creating or deleting an entry.
func (s State) WithError(err error) State {
	if err == nil {
		s.lastError = ""
	} else {
		s.lastError = err.Error()
	}
	return s
}

// CurrentPath returns the canonical path of the directory being viewed.
func (s State) CurrentPath() string { return s.currentPath }

// Entries returns the ordered listing of the current directory.
func (s State) Entries() []dirindex.Entry { return s.entries }

// Selected returns the cursor index. It is 0 when there are no entries.
func (s State) Selected() int { return s.selected }

// LastError returns the message of the last failed transition, or "".
func (s State) LastError() string { return s.lastError }

// Done reports whether Quit was handled.
func (s State) Done() bool { return s.done }

// SelectedEntry returns the highlighted entry, if any.
func (s State) SelectedEntry() (dirindex.Entry, bool) {
	if len(s.entries) == 0 {
		return dirindex.Entry{}, false
	}
	return s.entries[s.selected], true
}

// View returns the presentation tuple.
func (s State) View() View {
	return View{
		CurrentPath: s.currentPath,
		Entries:     s.entries,
		Selected:    s.selected,
		LastError:   s.lastError,
	}
}
