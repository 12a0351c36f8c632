// Package clip provides the system clipboard backends stepclip writes to.
//
//	native.go    — golang.design/x/clipboard (NSPasteboard, Win32, X11)
//	exec.go      — github.com/atotto/clipboard (pbcopy, xclip, xsel, wl-copy, clip.exe)
//	headless.go  — no clipboard; every write fails with ErrUnavailable
package clip

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
)

// ErrUnavailable is returned when no clipboard can be reached.
var ErrUnavailable = errors.New("clipboard unavailable")

// Backend is the interface that all clipboard implementations satisfy.
type Backend interface {
	// Name returns a human-readable name for the backend.
	Name() string

	// Write replaces the clipboard contents with text. It returns only once
	// the clipboard has accepted the text or the write has failed.
	Write(text string) error
}

// Kind selects a backend.
type Kind string

const (
	KindAuto   Kind = "auto"
	KindNative Kind = "native"
	KindExec   Kind = "exec"
	KindNone   Kind = "none"
)

// ParseKind validates a backend name from config or flags.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return KindAuto, nil
	case KindAuto, KindNative, KindExec, KindNone:
		return k, nil
	default:
		return "", fmt.Errorf("unknown clipboard backend %q (want auto|native|exec|none)", s)
	}
}

// New returns the backend for kind. KindAuto tries the backends in
// autoOrder and falls back to the headless backend so that callers always
// get something whose failures surface as retryable write errors.
func New(kind Kind) (Backend, error) {
	switch kind {
	case KindNative:
		return newNative()
	case KindExec:
		return newExec()
	case KindNone:
		return newHeadless(), nil
	case KindAuto, "":
	default:
		return nil, fmt.Errorf("unknown clipboard backend %q", kind)
	}

	var errs []error
	for _, k := range autoOrder(runtime.GOOS) {
		b, err := New(k)
		if err == nil {
			return b, nil
		}
		slog.Debug("clipboard backend unavailable", "backend", k, "err", err)
		errs = append(errs, err)
	}
	slog.Warn("clipboard unavailable, running headless", "err", errors.Join(errs...))
	return newHeadless(), nil
}

// autoOrder lists the backends KindAuto tries on goos. On Linux the X11
// selection is served by the writing process and vanishes when it exits,
// while xclip, xsel and wl-copy keep serving it, so exec comes first there.
func autoOrder(goos string) []Kind {
	if goos == "linux" {
		return []Kind{KindExec, KindNative}
	}
	return []Kind{KindNative, KindExec}
}
