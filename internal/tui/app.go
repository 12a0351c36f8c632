// Package tui is the interactive front end: a text area for the pasted
// input on the left and the copy session on the right.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"go.klb.dev/stepclip/internal/session"
)

const (
	defaultWidth  = 100
	defaultHeight = 24

	noticeCopyFailed = "Copy failed, press copy again to retry"
)

type focus int

const (
	focusInput focus = iota
	focusCopy
)

// Options configures a Model.
type Options struct {
	// Input pre-fills the text area.
	Input string
	// ClearOnReset empties the text area when the session is reset.
	ClearOnReset bool
	// Backend is shown in the footer.
	Backend string
}

// copyResultMsg carries the outcome of one clipboard write back into Update.
type copyResultMsg struct {
	seq    int
	copied bool
	err    error
}

// Model is the bubbletea model for a copy session.
type Model struct {
	ctrl *session.Controller
	opts Options

	input    textarea.Model
	progress progress.Model
	help     help.Model
	keys     keyMap

	focus   focus
	copying bool
	copySeq int
	notice  string

	width  int
	height int
}

// New returns a Model driving ctrl.
func New(ctrl *session.Controller, opts Options) Model {
	ta := textarea.New()
	ta.Placeholder = "Paste text, one unit per line.\nBlank lines are dropped; a line with a dot followed by more text is split after the dot."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetValue(opts.Input)
	ta.Focus()

	m := Model{
		ctrl:     ctrl,
		opts:     opts,
		input:    ta,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		help:     help.New(),
		keys:     newKeyMap(),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.layout()
	m.syncKeys()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case copyResultMsg:
		if msg.seq != m.copySeq {
			return m, nil
		}
		m.copying = false
		if msg.err != nil {
			m.notice = noticeCopyFailed
		} else {
			m.notice = ""
		}
		m.syncKeys()
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.syncKeys()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Start):
		return m.start()
	case key.Matches(msg, m.keys.Copy):
		return m.copy()
	case key.Matches(msg, m.keys.Reset):
		return m.reset()
	case key.Matches(msg, m.keys.Focus):
		return m.toggleFocus()
	}

	if m.focus == focusCopy {
		if key.Matches(msg, m.keys.CopyHere) {
			return m.copy()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.syncKeys()
	return m, cmd
}

func (m Model) start() (tea.Model, tea.Cmd) {
	if !m.ctrl.Start(m.input.Value()) {
		return m, nil
	}
	m.notice = ""
	m.focus = focusCopy
	m.input.Blur()
	m.syncKeys()
	return m, nil
}

// copy hands the clipboard write to a tea.Cmd. Further copies stay disabled
// until its copyResultMsg arrives.
func (m Model) copy() (tea.Model, tea.Cmd) {
	snap := m.ctrl.Snapshot()
	if m.copying || snap.State != session.Active || snap.Complete() {
		return m, nil
	}
	m.copying = true
	m.copySeq++
	seq, ctrl, id := m.copySeq, m.ctrl, snap.ID
	m.syncKeys()
	return m, func() tea.Msg {
		copied, err := ctrl.CopyFor(id)
		return copyResultMsg{seq: seq, copied: copied, err: err}
	}
}

func (m Model) reset() (tea.Model, tea.Cmd) {
	m.ctrl.Reset()
	m.copying = false
	m.copySeq++ // drop any write still in flight
	m.notice = ""
	if m.opts.ClearOnReset {
		m.input.Reset()
	}
	m.focus = focusInput
	cmd := m.input.Focus()
	m.syncKeys()
	return m, cmd
}

func (m Model) toggleFocus() (tea.Model, tea.Cmd) {
	if m.focus == focusInput {
		m.focus = focusCopy
		m.input.Blur()
		return m, nil
	}
	m.focus = focusInput
	cmd := m.input.Focus()
	return m, cmd
}

// syncKeys enables only the bindings valid in the current state, so that
// the help line and key handling agree.
func (m *Model) syncKeys() {
	active := m.ctrl.State() == session.Active
	canCopy := active && !m.ctrl.IsComplete() && !m.copying
	m.keys.Start.SetEnabled(!active && strings.TrimSpace(m.input.Value()) != "")
	m.keys.Copy.SetEnabled(canCopy)
	m.keys.CopyHere.SetEnabled(canCopy)
}

func (m *Model) layout() {
	pw := m.panelWidth()
	m.input.SetWidth(max(pw-4, 10))
	m.input.SetHeight(max(m.bodyHeight()-2, 3))
	m.progress.Width = max(pw-4, 10)
	m.help.Width = m.width
}

// Input returns the current text area content.
func (m Model) Input() string { return m.input.Value() }

// Notice returns the message shown under the copy control, if any.
func (m Model) Notice() string { return m.notice }

// Copying reports whether a clipboard write is pending.
func (m Model) Copying() bool { return m.copying }
