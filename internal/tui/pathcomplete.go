package tui

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/vvka-141/lfm/internal/files/filesystem"
)

// PathCompleter provides tab-completion and cycling for directory paths.
// Relative input is completed against a base directory but returned in the
// form the user typed it.
//
// Usage:
//
//	completer := NewPathCompleter(gw, state.CurrentPath())
//
//	// On Tab press:
//	input.SetValue(completer.Next(input.Value()))
//
//	// On any other keypress:
//	completer.Reset()
type PathCompleter struct {
	gw   filesystem.Gateway
	base string

	matches    []string
	cycleIndex int
	parent     string
	last       string
}

// NewPathCompleter creates a completer resolving relative input against base.
func NewPathCompleter(gw filesystem.Gateway, base string) *PathCompleter {
	return &PathCompleter{gw: gw, base: base}
}

// Next returns the next completion for input. Repeating Next with its own
// previous result cycles through the matches; with a single match it
// descends into it instead.
func (c *PathCompleter) Next(input string) string {
	if len(c.matches) > 1 && input == c.last {
		c.cycleIndex = (c.cycleIndex + 1) % len(c.matches)
		c.last = c.formatMatch(c.parent, c.matches[c.cycleIndex])
		return c.last
	}

	parent, prefix := splitPath(input)
	matches := c.findMatches(parent, prefix)
	if len(matches) == 0 {
		c.Reset()
		return input
	}
	c.matches = matches
	c.cycleIndex = 0
	c.parent = parent

	// First Tab: if there's a common prefix longer than the input, complete it
	if len(matches) > 1 {
		common := longestCommonPrefix(matches)
		if len(common) > len(prefix) {
			c.matches = nil
			return joinInput(parent, common)
		}
	}

	c.last = c.formatMatch(parent, matches[0])
	return c.last
}

// Reset clears the cycle state. Call this when the user types a non-Tab key.
func (c *PathCompleter) Reset() {
	c.matches = nil
	c.cycleIndex = 0
	c.parent = ""
	c.last = ""
}

// SetBase changes the directory relative input is resolved against.
func (c *PathCompleter) SetBase(base string) {
	c.base = base
	c.Reset()
}

func (c *PathCompleter) findMatches(parent, prefix string) []string {
	dir := parent
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.base, dir)
	}

	children, err := c.gw.ListChildren(dir)
	if err != nil {
		return nil
	}

	var matches []string
	lowPrefix := strings.ToLower(prefix)
	for _, child := range children {
		if !strings.HasPrefix(strings.ToLower(child.Name), lowPrefix) {
			continue
		}
		if !c.isDir(filepath.Join(dir, child.Name), child) {
			continue
		}
		matches = append(matches, child.Name)
	}

	sort.Strings(matches)
	return matches
}

func (c *PathCompleter) isDir(path string, child filesystem.Child) bool {
	if child.IsDir() {
		return true
	}
	if !child.IsSymlink() {
		return false
	}
	info, err := c.gw.Stat(path)
	return err == nil && info.IsDir()
}

func (c *PathCompleter) formatMatch(parent, name string) string {
	return joinInput(parent, name) + string(filepath.Separator)
}

// joinInput joins without cleaning "./" away when the user did not type it.
func joinInput(parent, name string) string {
	if parent == "." {
		return name
	}
	if strings.HasSuffix(parent, string(filepath.Separator)) {
		return parent + name
	}
	return parent + string(filepath.Separator) + name
}

// splitPath splits an input into parent directory and name prefix.
//
//	"src/com" → ("src", "com")
//	"src/"    → ("src", "")
//	"/"       → ("/", "")
//	"my"      → (".", "my")
//	""        → (".", "")
func splitPath(input string) (parent, prefix string) {
	if input == "" || input == "." {
		return ".", ""
	}

	if strings.HasSuffix(input, string(filepath.Separator)) {
		trimmed := strings.TrimRight(input, string(filepath.Separator))
		if trimmed == "" {
			return string(filepath.Separator), ""
		}
		return trimmed, ""
	}

	return filepath.Dir(input), filepath.Base(input)
}

// longestCommonPrefix finds the longest common prefix among strings (case-insensitive).
func longestCommonPrefix(strs []string) string {
	if len(strs) == 0 {
		return ""
	}
	if len(strs) == 1 {
		return strs[0]
	}

	lowered := make([]string, len(strs))
	for i, s := range strs {
		lowered[i] = strings.ToLower(s)
	}

	first := lowered[0]
	rest := lowered[1:]
	for i := 0; i < len(first); i++ {
		ch := first[i]
		for _, s := range rest {
			if i >= len(s) || s[i] != ch {
				return strs[0][:i]
			}
		}
	}
	return strs[0]
}
