// Package notify provides desktop notifications via D-Bus.
package notify

import (
	"fmt"
	"sync"
	"time"
)

// Urgency is the freedesktop notification urgency level.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional, supports basic markup)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are disabled or unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

// Nop drops every notification.
type Nop struct{}

func (Nop) Notify(Notification) (uint32, error) { return 0, nil }

func (Nop) Close(uint32) error { return nil }

const alertTimeout = 5000

// Stalled describes a version revealed before it became playable.
func Stalled(source string, elapsed time.Duration) Notification {
	return Notification{
		Title:   "Version not ready",
		Body:    fmt.Sprintf("%s was shown after %s without a playable frame", source, elapsed),
		Timeout: alertTimeout,
		Urgency: UrgencyNormal,
	}
}

// Failed describes a playback error.
func Failed(message string) Notification {
	return Notification{
		Title:   "Playback error",
		Body:    message,
		Timeout: alertTimeout,
		Urgency: UrgencyCritical,
	}
}

// Alerts keeps at most one alert on screen, replacing the previous one.
type Alerts struct {
	n Notifier

	mu   sync.Mutex
	last uint32
}

// NewAlerts wraps n. A nil n drops every alert.
func NewAlerts(n Notifier) *Alerts {
	if n == nil {
		n = Nop{}
	}
	return &Alerts{n: n}
}

// Send shows notif in place of the previous alert.
func (a *Alerts) Send(notif Notification) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	notif.ReplacesID = a.last
	id, err := a.n.Notify(notif)
	if err != nil {
		return err
	}
	if id != 0 {
		a.last = id
	}
	return nil
}

// Dismiss closes the current alert, if any.
func (a *Alerts) Dismiss() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.last == 0 {
		return nil
	}
	id := a.last
	a.last = 0
	return a.n.Close(id)
}
