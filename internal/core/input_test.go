package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if f.Has(ActionFlap) {
		t.Error("new frame should be empty")
	}

	f.Set(ActionFlap)
	f.Set(ActionRestart)
	if !f.Has(ActionFlap) || !f.Has(ActionRestart) {
		t.Error("frame should contain the set actions")
	}

	f.Clear()
	if f.Has(ActionFlap) {
		t.Error("Clear should drop all actions")
	}

	var zero InputFrame
	if zero.Has(ActionFlap) {
		t.Error("zero frame should report no actions")
	}
	zero.Set(ActionMenu)
	if !zero.Has(ActionMenu) {
		t.Error("Set on a zero frame should allocate")
	}
}

func TestActionString(t *testing.T) {
	if ActionFlap.String() != "Flap" {
		t.Errorf("ActionFlap.String() = %q", ActionFlap.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("unknown action should stringify as Unknown")
	}
}
