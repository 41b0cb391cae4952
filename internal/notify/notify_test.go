package notify

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type recorder struct {
	sent   []Notification
	closed []uint32
	next   uint32
	err    error
}

func (r *recorder) Notify(n Notification) (uint32, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.sent = append(r.sent, n)
	if n.ReplacesID != 0 {
		return n.ReplacesID, nil
	}
	r.next++
	return r.next, nil
}

func (r *recorder) Close(id uint32) error {
	r.closed = append(r.closed, id)
	return nil
}

func TestUrgencyValues(t *testing.T) {
	// Values are fixed by the notification daemon protocol.
	if UrgencyLow != 0 {
		t.Errorf("UrgencyLow = %d, want 0", UrgencyLow)
	}
	if UrgencyNormal != 1 {
		t.Errorf("UrgencyNormal = %d, want 1", UrgencyNormal)
	}
	if UrgencyCritical != 2 {
		t.Errorf("UrgencyCritical = %d, want 2", UrgencyCritical)
	}
}

func TestStalled(t *testing.T) {
	n := Stalled("shot010_v2", 3*time.Second)

	if n.Urgency != UrgencyNormal {
		t.Errorf("Urgency = %d, want UrgencyNormal", n.Urgency)
	}
	if !strings.Contains(n.Body, "shot010_v2") || !strings.Contains(n.Body, "3s") {
		t.Errorf("Body = %q, want source and elapsed time", n.Body)
	}
}

func TestFailed(t *testing.T) {
	n := Failed("Failed to load source: unsupported codec")

	if n.Urgency != UrgencyCritical {
		t.Errorf("Urgency = %d, want UrgencyCritical", n.Urgency)
	}
	if n.Body != "Failed to load source: unsupported codec" {
		t.Errorf("Body = %q", n.Body)
	}
}

func TestAlerts_ReplacesPrevious(t *testing.T) {
	rec := &recorder{}
	a := NewAlerts(rec)

	if err := a.Send(Failed("one")); err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if err := a.Send(Failed("two")); err != nil {
		t.Fatalf("Send() error: %v", err)
	}

	if len(rec.sent) != 2 {
		t.Fatalf("sent %d notifications, want 2", len(rec.sent))
	}
	if rec.sent[0].ReplacesID != 0 {
		t.Errorf("first ReplacesID = %d, want 0", rec.sent[0].ReplacesID)
	}
	if rec.sent[1].ReplacesID != 1 {
		t.Errorf("second ReplacesID = %d, want 1", rec.sent[1].ReplacesID)
	}
}

func TestAlerts_Dismiss(t *testing.T) {
	rec := &recorder{}
	a := NewAlerts(rec)

	if err := a.Dismiss(); err != nil {
		t.Fatalf("Dismiss() error: %v", err)
	}
	if len(rec.closed) != 0 {
		t.Fatalf("closed %v with nothing shown", rec.closed)
	}

	_ = a.Send(Failed("one"))
	if err := a.Dismiss(); err != nil {
		t.Fatalf("Dismiss() error: %v", err)
	}
	if len(rec.closed) != 1 || rec.closed[0] != 1 {
		t.Errorf("closed = %v, want [1]", rec.closed)
	}

	_ = a.Send(Failed("two"))
	if rec.sent[1].ReplacesID != 0 {
		t.Errorf("ReplacesID after dismiss = %d, want 0", rec.sent[1].ReplacesID)
	}
}

func TestAlerts_KeepsIDOnError(t *testing.T) {
	rec := &recorder{}
	a := NewAlerts(rec)
	_ = a.Send(Failed("one"))

	rec.err = errors.New("bus gone")
	if err := a.Send(Failed("two")); err == nil {
		t.Fatal("Send() error = nil, want error")
	}
	if a.last != 1 {
		t.Errorf("last = %d, want 1", a.last)
	}
}

func TestNewAlerts_NilNotifier(t *testing.T) {
	a := NewAlerts(nil)

	if err := a.Send(Failed("x")); err != nil {
		t.Errorf("Send() error: %v", err)
	}
	if err := a.Dismiss(); err != nil {
		t.Errorf("Dismiss() error: %v", err)
	}
}
