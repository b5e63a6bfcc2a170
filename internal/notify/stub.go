//go:build !linux

package notify

// New returns Discard: desktop notifications need a D-Bus session bus.
func New() (Notifier, error) {
	return Discard, nil
}

// Available always reports false on non-Linux platforms.
func Available() bool {
	return false
}

// ServerInfo describes the notification daemon.
type ServerInfo struct {
	Name    string
	Vendor  string
	Version string
}

// Server always fails on non-Linux platforms.
func Server(Notifier) (ServerInfo, error) {
	return ServerInfo{}, ErrNoServer
}
