package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"go.klb.dev/stepclip/internal/session"
)

type fakeClipboard struct {
	writes []string
	fail   bool
}

func (f *fakeClipboard) Write(text string) error {
	if f.fail {
		return errors.New("denied")
	}
	f.writes = append(f.writes, text)
	return nil
}

func newTestModel(t *testing.T, input string, opts Options) (Model, *session.Controller, *fakeClipboard) {
	t.Helper()
	cb := &fakeClipboard{}
	ctrl := session.New(cb)
	opts.Input = input
	return New(ctrl, opts), ctrl, cb
}

// send applies msg and drops any returned command; textarea commands only
// drive cursor blinking.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// copyWith applies a copy key and feeds the clipboard result back in, the
// way the bubbletea runtime would.
func copyWith(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd == nil {
		return m
	}
	res, ok := cmd().(copyResultMsg)
	if !ok {
		t.Fatalf("copy key returned %T, want copyResultMsg", res)
	}
	next, _ = m.Update(res)
	return next.(Model)
}

func keyMsg(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func TestStartGatedOnInput(t *testing.T) {
	m, ctrl, _ := newTestModel(t, "   ", Options{})
	m = send(t, m, keyMsg(tea.KeyCtrlS))
	if ctrl.State() != session.NotStarted {
		t.Fatal("started with blank input")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Hi. There")})
	m = send(t, m, keyMsg(tea.KeyCtrlS))
	if ctrl.State() != session.Active {
		t.Fatal("ctrl+s did not start the session")
	}
	if m.focus != focusCopy {
		t.Fatal("focus did not move to the copy panel")
	}
}

func TestCopyWalksUnits(t *testing.T) {
	m, ctrl, cb := newTestModel(t, "Hello. World\nAgain", Options{})
	m = send(t, m, keyMsg(tea.KeyCtrlS))

	for range 3 {
		m = copyWith(t, m, keyMsg(tea.KeyEnter))
	}
	if !ctrl.IsComplete() {
		t.Fatalf("not complete, cursor = %d", ctrl.Cursor())
	}
	if got := strings.Join(cb.writes, "|"); got != "Hello.|World|Again" {
		t.Fatalf("writes = %q", got)
	}

	m = copyWith(t, m, keyMsg(tea.KeyCtrlY))
	if len(cb.writes) != 3 {
		t.Fatal("copy after completion wrote to the clipboard")
	}
	if !strings.Contains(m.View(), "Done") {
		t.Fatal("view does not show Done after completion")
	}
}

func TestCopyFailureShowsNotice(t *testing.T) {
	m, ctrl, cb := newTestModel(t, "one\ntwo", Options{})
	m = send(t, m, keyMsg(tea.KeyCtrlS))

	cb.fail = true
	m = copyWith(t, m, keyMsg(tea.KeyCtrlY))
	if ctrl.Cursor() != 0 {
		t.Fatalf("cursor = %d after failure, want 0", ctrl.Cursor())
	}
	if m.Notice() != noticeCopyFailed {
		t.Fatalf("notice = %q", m.Notice())
	}
	if m.Copying() {
		t.Fatal("still copying after failure")
	}

	cb.fail = false
	m = copyWith(t, m, keyMsg(tea.KeyCtrlY))
	if ctrl.Cursor() != 1 || m.Notice() != "" {
		t.Fatalf("retry: cursor = %d notice = %q", ctrl.Cursor(), m.Notice())
	}
}

func TestCopyDisabledWhilePending(t *testing.T) {
	m, ctrl, cb := newTestModel(t, "one\ntwo", Options{})
	m = send(t, m, keyMsg(tea.KeyCtrlS))

	next, first := m.Update(keyMsg(tea.KeyCtrlY))
	m = next.(Model)
	if first == nil || !m.Copying() {
		t.Fatal("first copy did not start")
	}
	next, second := m.Update(keyMsg(tea.KeyCtrlY))
	m = next.(Model)
	if second != nil {
		t.Fatal("second copy issued while the first is pending")
	}

	next, _ = m.Update(first())
	m = next.(Model)
	if ctrl.Cursor() != 1 || len(cb.writes) != 1 || m.Copying() {
		t.Fatalf("cursor = %d writes = %d copying = %v", ctrl.Cursor(), len(cb.writes), m.Copying())
	}
}

func TestResetKeepsInputByDefault(t *testing.T) {
	m, ctrl, _ := newTestModel(t, "keep. me", Options{})
	m = send(t, m, keyMsg(tea.KeyCtrlS))
	m = copyWith(t, m, keyMsg(tea.KeyCtrlY))
	m = send(t, m, keyMsg(tea.KeyCtrlR))

	if ctrl.State() != session.NotStarted {
		t.Fatal("reset did not end the session")
	}
	if m.Input() != "keep. me" {
		t.Fatalf("input = %q, want it preserved", m.Input())
	}
	if m.focus != focusInput {
		t.Fatal("focus did not return to the input")
	}
}

func TestResetClearsInputWhenConfigured(t *testing.T) {
	m, _, _ := newTestModel(t, "drop me", Options{ClearOnReset: true})
	m = send(t, m, keyMsg(tea.KeyCtrlS))
	m = send(t, m, keyMsg(tea.KeyCtrlR))
	if m.Input() != "" {
		t.Fatalf("input = %q, want empty", m.Input())
	}
}

func TestStaleCopyResultIgnoredAfterReset(t *testing.T) {
	m, ctrl, cb := newTestModel(t, "a\nb", Options{})
	m = send(t, m, keyMsg(tea.KeyCtrlS))

	next, pending := m.Update(keyMsg(tea.KeyCtrlY))
	m = next.(Model)
	m = send(t, m, keyMsg(tea.KeyCtrlR))
	m = send(t, m, keyMsg(tea.KeyCtrlS))

	next, _ = m.Update(pending())
	m = next.(Model)
	if ctrl.Cursor() != 0 || len(cb.writes) != 0 {
		t.Fatalf("stale copy touched the new session: cursor = %d writes = %q", ctrl.Cursor(), cb.writes)
	}
	if m.Copying() {
		t.Fatal("copying flag set after reset")
	}
}

func TestStartWhileActiveKeepsSession(t *testing.T) {
	m, ctrl, _ := newTestModel(t, "first", Options{})
	m = send(t, m, keyMsg(tea.KeyCtrlS))
	m = send(t, m, keyMsg(tea.KeyTab))
	m = send(t, m, keyMsg(tea.KeyEnter))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("second")})
	m = send(t, m, keyMsg(tea.KeyCtrlS))

	if got := ctrl.Units(); len(got) != 1 || got[0] != "first" {
		t.Fatalf("units = %q, want the original session", got)
	}
	if !strings.Contains(m.Input(), "second") {
		t.Fatal("input edits while active were lost")
	}
}

func TestViewShowsCountAndProgress(t *testing.T) {
	m, _, _ := newTestModel(t, "a. b\nc", Options{Backend: "test"})
	v := m.View()
	if !strings.Contains(v, "3 units after processing") {
		t.Fatalf("view missing live count:\n%s", v)
	}
	if !strings.Contains(v, "ctrl+s") {
		t.Fatalf("view missing waiting prompt:\n%s", v)
	}

	m = send(t, m, keyMsg(tea.KeyCtrlS))
	m = copyWith(t, m, keyMsg(tea.KeyEnter))
	v = m.View()
	for _, want := range []string{"1/3 units", "Copy (2/3)", "clipboard: test"} {
		if !strings.Contains(v, want) {
			t.Fatalf("view missing %q:\n%s", want, v)
		}
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t, "", Options{})
	_, cmd := m.Update(keyMsg(tea.KeyCtrlC))
	if cmd == nil {
		t.Fatal("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("ctrl+c did not quit")
	}
}

func TestUnitWindow(t *testing.T) {
	tests := []struct {
		cursor, total, rows int
		first, last         int
	}{
		{cursor: 0, total: 3, rows: 10, first: 0, last: 3},
		{cursor: 0, total: 20, rows: 5, first: 0, last: 5},
		{cursor: 10, total: 20, rows: 5, first: 8, last: 13},
		{cursor: 19, total: 20, rows: 5, first: 15, last: 20},
		{cursor: 20, total: 20, rows: 5, first: 15, last: 20},
	}
	for _, tt := range tests {
		first, last := unitWindow(tt.cursor, tt.total, tt.rows)
		if first != tt.first || last != tt.last {
			t.Fatalf("unitWindow(%d, %d, %d) = [%d, %d), want [%d, %d)",
				tt.cursor, tt.total, tt.rows, first, last, tt.first, tt.last)
		}
	}
}

func TestCopyLabel(t *testing.T) {
	active := session.Snapshot{State: session.Active, Units: []string{"a", "b"}, Cursor: 1}
	if got := copyLabel(active, false); got != "Copy (2/2)" {
		t.Fatalf("label = %q", got)
	}
	active.Cursor = 2
	if got := copyLabel(active, false); got != "✓ Done" {
		t.Fatalf("label = %q", got)
	}
}
