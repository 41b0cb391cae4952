//go:build linux

package notify

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notificationsDest  = "org.freedesktop.Notifications"
	notificationsPath  = dbus.ObjectPath("/org/freedesktop/Notifications")
	notificationsIface = "org.freedesktop.Notifications"

	appName = "reelcheck"
)

// busNotifier talks to the session notification daemon.
type busNotifier struct {
	obj dbus.BusObject
}

// New connects to the session bus. Without one, notifications are dropped.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return Nop{}, nil //nolint:nilerr // no session bus means no desktop to notify
	}
	return &busNotifier{obj: conn.Object(notificationsDest, notificationsPath)}, nil
}

func hints(n Notification) map[string]dbus.Variant {
	h := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant(appName),
	}
	// Low urgency alerts stay out of the notification history.
	if n.Urgency == UrgencyLow {
		h["transient"] = dbus.MakeVariant(true)
	}
	return h
}

// Notify calls Notify(app_name, replaces_id, app_icon, summary, body,
// actions, hints, expire_timeout).
func (b *busNotifier) Notify(n Notification) (uint32, error) {
	call := b.obj.Call(notificationsIface+".Notify", 0,
		appName, n.ReplacesID, appName, n.Title, n.Body, []string{}, hints(n), n.Timeout)

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("send notification: %w", err)
	}
	return id, nil
}

func (b *busNotifier) Close(id uint32) error {
	if err := b.obj.Call(notificationsIface+".CloseNotification", 0, id).Err; err != nil {
		return fmt.Errorf("close notification %d: %w", id, err)
	}
	return nil
}
