// Package session implements the copy session: a sequence of units produced
// by the line processor and a cursor walking it one clipboard write at a time.
//
// A Controller is either NotStarted or Active. Start moves it to Active,
// CopyCurrent advances the cursor after each successful write, and Reset
// returns it to NotStarted. Operations that make no sense in the current
// state (Start while Active, CopyCurrent when complete) are no-ops.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"go.klb.dev/stepclip/internal/lines"
	"go.klb.dev/stepclip/internal/logging"
)

// ErrClipboardWrite wraps any failure reported by the clipboard. The cursor
// is left in place so the same unit can be copied again.
var ErrClipboardWrite = errors.New("clipboard write failed")

// Clipboard is the one capability the controller needs from the system
// clipboard. clip.Backend satisfies it.
type Clipboard interface {
	Write(text string) error
}

// State is the controller's top-level state.
type State int

const (
	NotStarted State = iota
	Active
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case Active:
		return "active"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// UnitStatus tags a unit relative to the cursor.
type UnitStatus int

const (
	Pending UnitStatus = iota
	Current
	Completed
)

func (s UnitStatus) String() string {
	switch s {
	case Completed:
		return "completed"
	case Current:
		return "current"
	default:
		return "pending"
	}
}

// Snapshot is a consistent copy of the controller state for rendering.
type Snapshot struct {
	State  State
	ID     string
	Units  []string
	Cursor int
	Busy   bool
}

// Complete reports whether every unit in the snapshot has been copied.
func (s Snapshot) Complete() bool {
	return s.State == Active && s.Cursor >= len(s.Units)
}

// Controller owns one copy session at a time. It is safe for concurrent
// use; the lock is never held while the clipboard is being written.
type Controller struct {
	clip Clipboard

	mu     sync.Mutex
	state  State
	id     string
	units  []string
	cursor int
	busy   bool   // a clipboard write is in flight
	gen    uint64 // bumped on every Start and Reset
}

// New returns a NotStarted controller writing to cb.
func New(cb Clipboard) *Controller {
	return &Controller{clip: cb}
}

// ProcessedCount previews how many units raw would produce. It does not
// touch any session state.
func ProcessedCount(raw string) int {
	return lines.Count(raw)
}

// Start processes raw and begins a session at cursor 0. It reports false
// and changes nothing when raw is blank or a session is already active.
func (c *Controller) Start(raw string) bool {
	if strings.TrimSpace(raw) == "" {
		slog.Debug("start ignored: empty input")
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Active {
		slog.Debug("start ignored: session already active", "session", c.id)
		return false
	}

	c.gen++
	c.state = Active
	c.id = uuid.NewString()
	c.units = lines.Process(raw)
	c.cursor = 0
	c.busy = false

	slog.Info("session started", "session", c.id, "units", len(c.units))
	return true
}

// CopyCurrent writes the unit under the cursor to the clipboard. On success
// the cursor advances and CopyCurrent reports true. A clipboard failure
// leaves the cursor alone and returns an error wrapping ErrClipboardWrite.
// With no active session, a complete session, or a write already in flight
// it does nothing and returns (false, nil).
func (c *Controller) CopyCurrent() (bool, error) {
	return c.copy("")
}

// CopyFor is CopyCurrent restricted to the session with the given ID. It is
// a no-op once that session has been reset or replaced, which lets callers
// that defer the write (a tea.Cmd) avoid copying from a newer session.
func (c *Controller) CopyFor(id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	return c.copy(id)
}

func (c *Controller) copy(want string) (bool, error) {
	c.mu.Lock()
	switch {
	case c.state != Active:
		c.mu.Unlock()
		slog.Debug("copy ignored: no active session")
		return false, nil
	case want != "" && want != c.id:
		c.mu.Unlock()
		slog.Debug("copy ignored: session replaced", "session", want)
		return false, nil
	case c.busy:
		c.mu.Unlock()
		slog.Debug("copy ignored: write in flight", "session", c.id)
		return false, nil
	case c.cursor >= len(c.units):
		c.mu.Unlock()
		slog.Debug("copy ignored: session complete", "session", c.id)
		return false, nil
	}
	unit := c.units[c.cursor]
	index := c.cursor
	gen := c.gen
	id := c.id
	c.busy = true
	c.mu.Unlock()

	err := c.clip.Write(unit)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		// Reset (and maybe a new Start) happened while writing.
		slog.Debug("copy result dropped: session replaced", "session", id)
		return false, nil
	}
	c.busy = false
	if err != nil {
		slog.Warn("clipboard write failed", "session", id, "unit", index+1, "err", err)
		return false, fmt.Errorf("%w: %w", ErrClipboardWrite, err)
	}
	c.cursor++
	slog.Info("unit copied", "session", id, "unit", index+1, "total", len(c.units))
	logging.Preview("copied text", unit)
	if c.cursor == len(c.units) {
		slog.Info("session complete", "session", id)
	}
	return true, nil
}

// Reset discards the session, whatever its state.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Active {
		slog.Info("session reset", "session", c.id, "copied", c.cursor, "total", len(c.units))
	}
	c.gen++
	c.state = NotStarted
	c.id = ""
	c.units = nil
	c.cursor = 0
	c.busy = false
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Units returns a copy of the active sequence, or nil when not started.
func (c *Controller) Units() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneUnits(c.units)
}

// Cursor returns the index of the next unit to copy. It is 0 when no
// session is active.
func (c *Controller) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// Progress returns the number of copied units and the sequence length.
func (c *Controller) Progress() (done, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor, len(c.units)
}

// IsComplete reports whether an active session has copied every unit.
func (c *Controller) IsComplete() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == Active && c.cursor >= len(c.units)
}

// Busy reports whether a clipboard write is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Current returns the unit under the cursor, if any.
func (c *Controller) Current() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Active || c.cursor >= len(c.units) {
		return "", false
	}
	return c.units[c.cursor], true
}

// UnitStatus tags unit i as completed, current or pending.
func (c *Controller) UnitStatus(i int) UnitStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return statusAt(i, c.cursor)
}

// Status tags unit i of the snapshot.
func (s Snapshot) Status(i int) UnitStatus {
	return statusAt(i, s.Cursor)
}

// Snapshot returns a consistent copy of the controller state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		State:  c.state,
		ID:     c.id,
		Units:  cloneUnits(c.units),
		Cursor: c.cursor,
		Busy:   c.busy,
	}
}

func statusAt(i, cursor int) UnitStatus {
	switch {
	case i < cursor:
		return Completed
	case i == cursor:
		return Current
	default:
		return Pending
	}
}

func cloneUnits(units []string) []string {
	if units == nil {
		return nil
	}
	out := make([]string, len(units))
	copy(out, units)
	return out
}
