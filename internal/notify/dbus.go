//go:build linux

package notify

import (
	"os"

	"github.com/godbus/dbus/v5"
)

const (
	dbusNotifyDest      = "org.freedesktop.Notifications"
	dbusNotifyPath      = "/org/freedesktop/Notifications"
	dbusNotifyInterface = "org.freedesktop.Notifications"

	appName      = "Pressable"
	desktopEntry = "pressable"
)

// dbusNotifier sends notifications via D-Bus.
type dbusNotifier struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// New creates a Notifier that sends desktop notifications via D-Bus.
// It returns Discard when no session bus is reachable.
func New() (Notifier, error) {
	if !Available() {
		return Discard, nil
	}

	conn, err := dbus.SessionBus()
	if err != nil {
		return Discard, nil //nolint:nilerr // notifications are optional
	}

	obj := conn.Object(dbusNotifyDest, dbusNotifyPath)
	return &dbusNotifier{conn: conn, obj: obj}, nil
}

// Available reports whether a session bus address is configured.
func Available() bool {
	return os.Getenv("DBUS_SESSION_BUS_ADDRESS") != ""
}

// ServerInfo describes the notification daemon.
type ServerInfo struct {
	Name    string
	Vendor  string
	Version string
}

// Server asks the daemon behind n for its identity. It fails for notifiers
// not backed by D-Bus.
func Server(n Notifier) (ServerInfo, error) {
	dn, ok := n.(*dbusNotifier)
	if !ok {
		return ServerInfo{}, ErrNoServer
	}

	var info ServerInfo
	var specVersion string
	err := dn.obj.Call(dbusNotifyInterface+".GetServerInformation", 0).
		Store(&info.Name, &info.Vendor, &info.Version, &specVersion)
	return info, err
}

// Notify sends a notification via D-Bus.
func (n *dbusNotifier) Notify(notif Notification) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(notif.Urgency)),
		"desktop-entry": dbus.MakeVariant(desktopEntry),
	}

	// Notify(app_name, replaces_id, icon, summary, body, actions, hints, timeout) -> id
	call := n.obj.Call(
		dbusNotifyInterface+".Notify",
		0,
		appName,
		notif.ReplacesID,
		notif.Icon,
		notif.Title,
		notif.Body,
		[]string{},
		hints,
		notif.Timeout,
	)
	if call.Err != nil {
		return 0, call.Err
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Close closes a notification by ID.
func (n *dbusNotifier) Close(id uint32) error {
	return n.obj.Call(dbusNotifyInterface+".CloseNotification", 0, id).Err
}
