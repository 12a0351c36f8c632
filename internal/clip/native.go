package clip

import (
	"fmt"
	"runtime"
	"sync"

	"golang.design/x/clipboard"
)

var (
	initOnce sync.Once
	initErr  error
)

// nativeBackend talks to the platform clipboard through
// golang.design/x/clipboard. clipboard.Init is called lazily rather than in
// init() so that sub-commands that never copy (split, version) don't fail on
// headless systems.
type nativeBackend struct{}

func newNative() (Backend, error) {
	initOnce.Do(func() { initErr = clipboard.Init() })
	if initErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, initErr)
	}
	return nativeBackend{}, nil
}

func (nativeBackend) Name() string {
	switch runtime.GOOS {
	case "darwin":
		return "macOS NSPasteboard"
	case "windows":
		return "Windows Clipboard"
	default:
		return "X11 clipboard"
	}
}

// Write reports failure when the library returns no change channel, which
// is how it signals that the write was rejected.
func (nativeBackend) Write(text string) error {
	if clipboard.Write(clipboard.FmtText, []byte(text)) == nil {
		return fmt.Errorf("%w: write rejected", ErrUnavailable)
	}
	return nil
}
