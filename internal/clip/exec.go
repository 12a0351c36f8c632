package clip

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// execBackend shells out to the platform copy tool via atotto/clipboard.
// It covers Wayland and minimal X setups where the native backend cannot
// initialise.
type execBackend struct{}

func newExec() (Backend, error) {
	if clipboard.Unsupported {
		return nil, fmt.Errorf("%w: no pbcopy, xclip, xsel, wl-copy or clip.exe found", ErrUnavailable)
	}
	return execBackend{}, nil
}

func (execBackend) Name() string { return "exec (atotto/clipboard)" }

func (execBackend) Write(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	return nil
}
