// Package notify sends desktop notifications over the freedesktop D-Bus
// interface and turns button transitions into notifications.
package notify

import "errors"

// ErrNoServer is returned by Server for notifiers without a daemon.
var ErrNoServer = errors.New("no notification server")

// Urgency is the freedesktop notification urgency hint.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

func (u Urgency) String() string {
	switch u {
	case UrgencyLow:
		return "low"
	case UrgencyNormal:
		return "normal"
	case UrgencyCritical:
		return "critical"
	}
	return "unknown"
}

// Notification is one desktop notification.
type Notification struct {
	Title      string
	Body       string
	Icon       string  // file path or icon name
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification
	Urgency    Urgency // zero value is UrgencyLow
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends n and returns the id the server assigned, or 0 when
	// notifications are unavailable.
	Notify(n Notification) (uint32, error)
	// Close withdraws a notification by id.
	Close(id uint32) error
}

// Discard is a Notifier that drops everything.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Notify(Notification) (uint32, error) { return 0, nil }
func (discard) Close(uint32) error                  { return nil }
