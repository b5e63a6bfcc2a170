//go:build linux

package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBusNotifier(t *testing.T) Notifier {
	t.Helper()
	if !Available() {
		t.Skip("no D-Bus session available")
	}
	n, err := New()
	require.NoError(t, err)
	require.NotNil(t, n)
	return n
}

func TestNew_FallsBackWithoutBus(t *testing.T) {
	t.Setenv("DBUS_SESSION_BUS_ADDRESS", "")

	n, err := New()
	require.NoError(t, err)
	assert.Equal(t, Discard, n)
}

func TestServer_ReportsDaemon(t *testing.T) {
	n := newBusNotifier(t)

	info, err := Server(n)
	require.NoError(t, err)
	assert.NotEmpty(t, info.Name)
}

func TestNotify_ReplaceThenClose(t *testing.T) {
	n := newBusNotifier(t)

	id, err := n.Notify(Notification{
		Title:   "upload failed",
		Body:    "connection refused",
		Timeout: 1000,
		Urgency: UrgencyCritical,
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	replaced, err := n.Notify(Notification{
		Title:      "upload failed again",
		Body:       "connection refused",
		Timeout:    1000,
		ReplacesID: id,
	})
	require.NoError(t, err)
	assert.Equal(t, id, replaced)

	assert.NoError(t, n.Close(replaced))
}
