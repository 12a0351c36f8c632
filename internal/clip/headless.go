package clip

// headlessBackend is used when no display server or copy tool is available
// (containers, CI, SSH sessions without forwarding). Writes always fail so
// that a session never advances past text that was not actually copied.
type headlessBackend struct{}

func newHeadless() Backend { return headlessBackend{} }

func (headlessBackend) Name() string { return "headless (unavailable)" }

func (headlessBackend) Write(_ string) error { return ErrUnavailable }
