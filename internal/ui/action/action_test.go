package action

import "testing"

type stubAction struct{}

func (stubAction) ActionType() string { return "stub.done" }

func TestMsg_String(t *testing.T) {
	if got := (Msg{Source: "frameprompt", Action: stubAction{}}).String(); got != "frameprompt:stub.done" {
		t.Errorf("String() = %q", got)
	}
	if got := (Msg{Source: "helpbindings"}).String(); got != "helpbindings" {
		t.Errorf("String() without action = %q", got)
	}
}
