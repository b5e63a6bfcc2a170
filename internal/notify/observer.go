package notify

import (
	"log/slog"
	"sync"

	"github.com/llehouerou/pressable/internal/button"
	"github.com/llehouerou/pressable/internal/buttonstate"
	"github.com/llehouerou/pressable/internal/errmsg"
	"github.com/llehouerou/pressable/internal/ui/render"
)

// DefaultTimeout is the expiry used when ObserverOptions.Timeout is zero.
const DefaultTimeout int32 = 5000

// ObserverOptions controls which transitions become desktop notifications.
type ObserverOptions struct {
	OnSuccess bool  // notify on Success as well as Error
	Timeout   int32 // ms (default: DefaultTimeout)

	// Labels maps button names to display titles.
	Labels map[string]string

	// Dispatch runs a send. Defaults to a new goroutine so D-Bus round
	// trips never block the caller. Sends may run in any order; one that
	// arrives after a newer send for the same button is dropped.
	Dispatch func(func())

	Logger *slog.Logger
}

// Observer returns a button.Observer that sends a notification whenever a
// button enters Error (and Success when enabled). Each button reuses its
// previous notification instead of stacking new ones.
func Observer(n Notifier, opts ObserverOptions) button.Observer {
	if n == nil {
		return func(button.TransitionEvent) {}
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Dispatch == nil {
		opts.Dispatch = func(f func()) { go f() }
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	var (
		mu     sync.Mutex
		last   = make(map[string]uint32) // notification id per button
		queued = make(map[string]uint64) // sequence of the latest event
		sent   = make(map[string]uint64) // sequence of the latest send
	)

	return func(ev button.TransitionEvent) {
		notif, ok := notificationFor(ev, opts)
		if !ok {
			return
		}

		mu.Lock()
		queued[ev.Button]++
		seq := queued[ev.Button]
		mu.Unlock()

		opts.Dispatch(func() {
			mu.Lock()
			defer mu.Unlock()

			if seq <= sent[ev.Button] {
				return
			}
			sent[ev.Button] = seq

			notif.ReplacesID = last[ev.Button]
			id, err := n.Notify(notif)
			if err != nil {
				opts.Logger.Warn(errmsg.FormatWith(errmsg.OpNotify, ev.Button, err))
				return
			}
			last[ev.Button] = id
		})
	}
}

func notificationFor(ev button.TransitionEvent, opts ObserverOptions) (Notification, bool) {
	title := ev.Button
	if label, ok := opts.Labels[ev.Button]; ok && label != "" {
		title = label
	}

	switch ev.State.Kind() {
	case buttonstate.Error:
		body := "failed"
		if err := ev.State.Err(); err != nil {
			body = render.FirstLine(errmsg.FormatWith(errmsg.OpRunAction, ev.Button, err))
		}
		return Notification{
			Title:   title,
			Body:    body,
			Timeout: opts.Timeout,
			Urgency: UrgencyCritical,
		}, true
	case buttonstate.Success:
		if !opts.OnSuccess {
			return Notification{}, false
		}
		return Notification{
			Title:   title,
			Body:    "done",
			Timeout: opts.Timeout,
			Urgency: UrgencyLow,
		}, true
	default:
		return Notification{}, false
	}
}
