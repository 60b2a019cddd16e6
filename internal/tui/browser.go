package tui

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/lfm/internal/dirindex"
	"github.com/vvka-141/lfm/internal/files/filesystem"
	"github.com/vvka-141/lfm/internal/logging"
	"github.com/vvka-141/lfm/internal/navigation"
	"github.com/vvka-141/lfm/internal/sizecache"
	"github.com/vvka-141/lfm/pkg/lfm"
)

// Sizer measures the size of a path.
type Sizer interface {
	Measure(path string) sizecache.Result
}

// BrowserOptions configures a Browser.
type BrowserOptions struct {
	ConfirmDelete bool
	Logger        lfm.Logger
}

type browserMode int

const (
	modeBrowse browserMode = iota
	modeMkdir
	modeGoTo
	modeConfirmDelete
)

// chromeLines is the number of screen lines used by everything but the listing.
const chromeLines = 12

// detail is the memoized detail pane of the highlighted entry. Directory
// sizes arrive asynchronously; seq identifies the measurement in flight.
type detail struct {
	path   string
	info   filesystem.FileInfo
	size   sizecache.Result
	err    error
	sizing bool
	seq    int
}

// sizedMsg delivers the result of a background directory measurement.
type sizedMsg struct {
	path   string
	seq    int
	result sizecache.Result
}

func measureCmd(sizer Sizer, path string, seq int) tea.Cmd {
	return func() tea.Msg {
		return sizedMsg{path: path, seq: seq, result: sizer.Measure(path)}
	}
}

// Browser is the bubbletea model painting a navigation.State.
type Browser struct {
	state  navigation.State
	sizer  Sizer
	gw     filesystem.Gateway
	logger lfm.Logger

	mode          browserMode
	confirmDelete bool
	pending       dirindex.Entry
	input         textinput.Model
	gotoInput     textinput.Model
	completer     *PathCompleter

	detail  detail
	seq     int
	spinner sizingSpinner
	initCmd tea.Cmd
	offset  int

	width  int
	height int

	keys KeyMap
	help help.Model
}

// NewBrowser creates a browser over an initial navigation state.
func NewBrowser(state navigation.State, sizer Sizer, gw filesystem.Gateway, opts BrowserOptions) Browser {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	input := textinput.New()
	input.Placeholder = "directory name"
	input.CharLimit = 255
	input.Prompt = "new directory: "

	gotoInput := textinput.New()
	gotoInput.Placeholder = "path (tab completes)"
	gotoInput.CharLimit = 4096
	gotoInput.Prompt = "go to: "

	b := Browser{
		state:         state,
		sizer:         sizer,
		gw:            gw,
		logger:        logger,
		confirmDelete: opts.ConfirmDelete,
		input:         input,
		gotoInput:     gotoInput,
		completer:     NewPathCompleter(gw, state.CurrentPath()),
		spinner:       newSizingSpinner(),
		width:         80,
		height:        24,
		keys:          DefaultKeyMap(),
		help:          help.New(),
	}
	b.initCmd = b.syncDetail()
	return b
}

// Init implements tea.Model. It starts sizing the initially highlighted entry.
func (b Browser) Init() tea.Cmd {
	return b.initCmd
}

// Update implements tea.Model.
func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.help.Width = msg.Width
		b.clampOffset()
		return b, nil

	case sizedMsg:
		if b.detail.sizing && msg.seq == b.detail.seq {
			b.detail.size = msg.result
			b.detail.sizing = false
		}
		return b, nil

	case spinner.TickMsg:
		if !b.detail.sizing {
			return b, nil
		}
		var cmd tea.Cmd
		b.spinner, cmd = b.spinner.Update(msg)
		return b, cmd

	case tea.KeyMsg:
		switch b.mode {
		case modeMkdir:
			return b.updateMkdir(msg)
		case modeGoTo:
			return b.updateGoTo(msg)
		case modeConfirmDelete:
			return b.updateConfirmDelete(msg)
		}
		return b.updateBrowse(msg)
	}
	return b, nil
}

func (b Browser) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keys.Quit):
		b.state = b.state.Handle(navigation.Quit)
		return b, tea.Quit
	case key.Matches(msg, b.keys.Up):
		return b, b.apply(navigation.MoveUp)
	case key.Matches(msg, b.keys.Down):
		return b, b.apply(navigation.MoveDown)
	case key.Matches(msg, b.keys.Open):
		return b, b.apply(navigation.Activate)
	case key.Matches(msg, b.keys.Back):
		return b, b.apply(navigation.Back)
	case key.Matches(msg, b.keys.Refresh):
		return b, b.apply(navigation.Refresh)
	case key.Matches(msg, b.keys.Help):
		b.help.ShowAll = !b.help.ShowAll
	case key.Matches(msg, b.keys.NewDir):
		b.mode = modeMkdir
		b.input.Reset()
		return b, b.input.Focus()
	case key.Matches(msg, b.keys.GoTo):
		b.mode = modeGoTo
		b.gotoInput.Reset()
		b.completer.SetBase(b.state.CurrentPath())
		return b, b.gotoInput.Focus()
	case key.Matches(msg, b.keys.Delete):
		e, ok := b.state.SelectedEntry()
		if !ok || e.IsParent {
			return b, nil
		}
		if b.confirmDelete {
			b.mode = modeConfirmDelete
			b.pending = e
			return b, nil
		}
		return b, b.remove(e)
	}
	return b, nil
}

func (b Browser) updateMkdir(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		b.mode = modeBrowse
		b.input.Blur()
		return b, nil
	case tea.KeyEnter:
		b.mode = modeBrowse
		b.input.Blur()
		return b, b.mkdir(strings.TrimSpace(b.input.Value()))
	}

	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	return b, cmd
}

func (b Browser) updateGoTo(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		b.mode = modeBrowse
		b.gotoInput.Blur()
		return b, nil
	case tea.KeyTab:
		b.gotoInput.SetValue(b.completer.Next(b.gotoInput.Value()))
		b.gotoInput.CursorEnd()
		return b, nil
	case tea.KeyEnter:
		b.mode = modeBrowse
		b.gotoInput.Blur()
		target := expandHome(strings.TrimSpace(b.gotoInput.Value()))
		if target == "" {
			return b, nil
		}
		b.state = b.state.GoTo(target)
		return b, b.afterTransition("go to")
	}

	b.completer.Reset()
	var cmd tea.Cmd
	b.gotoInput, cmd = b.gotoInput.Update(msg)
	return b, cmd
}

// expandHome replaces a leading "~" with the user's home directory.
func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}

func (b Browser) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keys.Confirm):
		b.mode = modeBrowse
		return b, b.remove(b.pending)
	case key.Matches(msg, b.keys.Cancel):
		b.mode = modeBrowse
	}
	return b, nil
}

func (b *Browser) apply(ev navigation.Event) tea.Cmd {
	b.state = b.state.Handle(ev)
	if ev == navigation.Refresh {
		b.detail = detail{}
	}
	return b.afterTransition(ev.String())
}

// afterTransition logs a failed transition and brings the view in line
// with the new state.
func (b *Browser) afterTransition(action string) tea.Cmd {
	if msg := b.state.LastError(); msg != "" {
		b.logger.Verbose("%s: %s", action, msg)
	}
	b.clampOffset()
	return b.syncDetail()
}

func (b *Browser) mkdir(name string) tea.Cmd {
	if name == "" {
		return nil
	}
	if name == "." || name == ".." || strings.ContainsRune(name, filepath.Separator) {
		b.state = b.state.WithError(fmt.Errorf("invalid directory name %q", name))
		return nil
	}

	path := filepath.Join(b.state.CurrentPath(), name)
	err := b.gw.Mkdir(path)
	if errors.Is(err, fs.ErrExist) {
		err = fmt.Errorf("%w: %s", lfm.ErrAlreadyExists, name)
	}

	b.state = b.state.Handle(navigation.Refresh)
	b.detail = detail{}
	if err != nil {
		b.state = b.state.WithError(err)
	} else {
		b.logger.Info("created directory %s", path)
		b.state = b.state.SelectPath(path)
	}
	return b.afterTransition("mkdir")
}

func (b *Browser) remove(e dirindex.Entry) tea.Cmd {
	err := b.gw.Remove(e.Path)

	b.state = b.state.Handle(navigation.Refresh)
	b.detail = detail{}
	if err != nil {
		b.state = b.state.WithError(fmt.Errorf("failed to delete %s: %w", e.Name, err))
	} else {
		b.logger.Info("deleted %s", e.Path)
	}
	return b.afterTransition("delete")
}

// syncDetail refreshes the detail pane when the highlighted path changed.
// Directories are sized in the background; the returned command delivers
// the result. The parent marker is never sized: it would walk the entire
// parent tree.
func (b *Browser) syncDetail() tea.Cmd {
	e, ok := b.state.SelectedEntry()
	if !ok {
		b.detail = detail{}
		return nil
	}
	if e.Path == b.detail.path && !e.IsParent {
		return nil
	}

	d := detail{path: e.Path}
	d.info, d.err = b.gw.Lstat(e.Path)
	switch {
	case d.err != nil, e.IsParent:
	case d.info.IsDir():
		b.seq++
		d.seq, d.sizing = b.seq, true
		b.detail = d
		return tea.Batch(measureCmd(b.sizer, d.path, d.seq), b.spinner.Tick)
	default:
		d.size = b.sizer.Measure(e.Path)
	}
	b.detail = d
	return nil
}

func (b Browser) listHeight() int {
	h := b.height - chromeLines
	if h < 3 {
		h = 3
	}
	return h
}

func (b *Browser) clampOffset() {
	sel, h := b.state.Selected(), b.listHeight()
	if sel < b.offset {
		b.offset = sel
	}
	if sel >= b.offset+h {
		b.offset = sel - h + 1
	}
	if last := len(b.state.Entries()) - h; b.offset > last {
		b.offset = last
	}
	if b.offset < 0 {
		b.offset = 0
	}
}

// View implements tea.Model.
func (b Browser) View() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("lfm"))
	s.WriteString(" ")
	s.WriteString(PathStyle.Render(b.state.CurrentPath()))
	s.WriteString("\n\n")

	s.WriteString(b.viewEntries())
	s.WriteString("\n")
	s.WriteString(b.viewDetail())
	s.WriteString("\n")

	if msg := b.state.LastError(); msg != "" {
		s.WriteString(ErrorStyle.Render(SymbolCross + " " + msg))
		s.WriteString("\n")
	}

	switch b.mode {
	case modeMkdir:
		s.WriteString(b.input.View())
	case modeGoTo:
		s.WriteString(b.gotoInput.View())
	case modeConfirmDelete:
		s.WriteString(WarningStyle.Render(fmt.Sprintf("Delete %s and everything in it? [y/N]", b.pending.Path)))
	default:
		s.WriteString(b.help.View(b.keys))
	}
	return s.String()
}

func (b Browser) viewEntries() string {
	entries := b.state.Entries()
	if len(entries) == 0 {
		return MutedStyle.Render("  (empty)") + "\n"
	}

	end := b.offset + b.listHeight()
	if end > len(entries) {
		end = len(entries)
	}

	var s strings.Builder
	for i := b.offset; i < end; i++ {
		e := entries[i]
		label := EntryLabel(e)
		if i == b.state.Selected() {
			s.WriteString(SymbolCursor + " " + SelectedStyle.Render(label))
		} else {
			s.WriteString("  " + rowStyle(e).Render(label))
		}
		s.WriteString("\n")
	}
	if hidden := len(entries) - end; hidden > 0 {
		s.WriteString(MutedStyle.Render(fmt.Sprintf("  … %d more", hidden)))
		s.WriteString("\n")
	}
	return s.String()
}

func rowStyle(e dirindex.Entry) lipgloss.Style {
	switch {
	case e.IsParent:
		return ParentStyle
	case e.LinkTarget != "":
		return LinkStyle
	case e.IsDir:
		return DirStyle
	}
	return FileStyle
}

func (b Browser) viewDetail() string {
	e, ok := b.state.SelectedEntry()
	if !ok {
		return ""
	}

	row := func(label, value string) string {
		return DetailLabelStyle.Render(label) + value
	}

	var lines []string
	lines = append(lines, row("Path", e.Path))
	switch {
	case b.detail.err != nil:
		lines = append(lines, row("Status", ErrorStyle.Render(b.detail.err.Error())))
	case b.detail.info != nil:
		lines = append(lines, row("Type", KindOf(b.detail.info.Mode())))
		switch {
		case e.IsParent:
			lines = append(lines, row("Size", MutedStyle.Render("parent directory")))
		case b.detail.sizing:
			lines = append(lines, row("Size", b.spinner.View()))
		default:
			lines = append(lines, row("Size", FormatSize(b.detail.size)))
		}
		lines = append(lines,
			row("Modified", b.detail.info.ModTime().Format(TimeLayout)),
			row("Mode", b.detail.info.Mode().String()),
		)
	}

	width := b.width - 2
	if width < 20 {
		width = 20
	}
	return DetailBoxStyle.Width(width).Render(strings.Join(lines, "\n"))
}

// State returns the current navigation state.
func (b Browser) State() navigation.State {
	return b.state
}
