package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vvka-141/lfm/internal/files/filesystem"
)

func completionTree() *filesystem.MemoryGateway {
	m := filesystem.NewMemoryGateway()
	m.AddDir("/home/src/alpha")
	m.AddDir("/home/src/beta")
	m.AddDir("/home/src/gamma")
	m.AddDir("/home/migrations")
	m.AddDir("/home/misc")
	m.AddFile("/home/src/notes.txt", "x")
	m.AddSymlink("/home/link", "/home/src")
	return m
}

func TestPathCompleter_SingleMatch(t *testing.T) {
	c := NewPathCompleter(completionTree(), "/home")

	assert.Equal(t, "/home/src/alpha/", c.Next("/home/src/al"))
	assert.Equal(t, "src/beta/", c.Next("src/b"))
}

func TestPathCompleter_CommonPrefixThenCycle(t *testing.T) {
	c := NewPathCompleter(completionTree(), "/home")

	r1 := c.Next("m")
	assert.Equal(t, "mi", r1, "first Tab completes the common prefix")

	r2 := c.Next(r1)
	assert.Equal(t, "migrations/", r2)
	r3 := c.Next(r2)
	assert.Equal(t, "misc/", r3)
	r4 := c.Next(r3)
	assert.Equal(t, "migrations/", r4, "cycling wraps around")
}

func TestPathCompleter_CyclesThroughMatches(t *testing.T) {
	c := NewPathCompleter(completionTree(), "/")

	r1 := c.Next("/home/src/")
	r2 := c.Next(r1)
	r3 := c.Next(r2)

	assert.Equal(t, []string{"/home/src/alpha/", "/home/src/beta/", "/home/src/gamma/"}, []string{r1, r2, r3})
}

func TestPathCompleter_SingleMatchDescends(t *testing.T) {
	m := completionTree()
	m.AddDir("/home/src/alpha/deep")
	c := NewPathCompleter(m, "/home")

	r1 := c.Next("src/al")
	assert.Equal(t, "src/alpha/", r1)
	assert.Equal(t, "src/alpha/deep/", c.Next(r1))
}

func TestPathCompleter_ResetStopsCycling(t *testing.T) {
	c := NewPathCompleter(completionTree(), "/")

	r1 := c.Next("/home/src/")
	c.Reset()
	r2 := c.Next("/home/src/")

	assert.Equal(t, r1, r2)
}

func TestPathCompleter_DirsAndDirLinksOnly(t *testing.T) {
	c := NewPathCompleter(completionTree(), "/home")

	assert.Equal(t, "src/notes", c.Next("src/notes"), "files are not offered")
	assert.Equal(t, "link/", c.Next("li"), "links to directories are offered")
}

func TestPathCompleter_NoMatches(t *testing.T) {
	c := NewPathCompleter(completionTree(), "/home")

	assert.Equal(t, "zzz", c.Next("zzz"))
	assert.Equal(t, "/nope/x", c.Next("/nope/x"))
}

func TestPathCompleter_SetBase(t *testing.T) {
	c := NewPathCompleter(completionTree(), "/home")
	c.SetBase("/home/src")

	assert.Equal(t, "gamma/", c.Next("g"))
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		input          string
		expectedParent string
		expectedPrefix string
	}{
		{"", ".", ""},
		{".", ".", ""},
		{"my", ".", "my"},
		{"src/com", "src", "com"},
		{"src/", "src", ""},
		{"/", "/", ""},
		{"/usr", "/", "usr"},
	}

	for _, tt := range tests {
		parent, prefix := splitPath(tt.input)
		if parent != tt.expectedParent || prefix != tt.expectedPrefix {
			t.Errorf("splitPath(%q) = (%q, %q), want (%q, %q)",
				tt.input, parent, prefix, tt.expectedParent, tt.expectedPrefix)
		}
	}
}

func TestLongestCommonPrefix(t *testing.T) {
	assert.Equal(t, "", longestCommonPrefix(nil))
	assert.Equal(t, "only", longestCommonPrefix([]string{"only"}))
	assert.Equal(t, "Mi", longestCommonPrefix([]string{"Migrations", "misc"}))
	assert.Equal(t, "", longestCommonPrefix([]string{"a", "b"}))
}
