package models

import (
	"errors"
	"testing"
)

func TestField(t *testing.T) {
	if f := Present("2.10"); !f.Present || f.Value != "2.10" {
		t.Errorf("Present(2.10) = %+v", f)
	}
	if f := Present(""); f.Present {
		t.Error("blank value must yield an absent field")
	}
	if got := Absent().Or("fallback"); got != "fallback" {
		t.Errorf("Absent().Or = %q", got)
	}
	if got := Present("x").Or("fallback"); got != "x" {
		t.Errorf("Present(x).Or = %q", got)
	}
}

func TestRunError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewRunError(CodeNetwork, "navigation failed", cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause must be reachable via errors.Is")
	}

	var rerr *RunError
	if !errors.As(error(err), &rerr) || rerr.Code != CodeNetwork {
		t.Errorf("errors.As failed to recover RunError: %+v", rerr)
	}

	want := "NETWORK_FAILED: navigation failed: connection refused"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
