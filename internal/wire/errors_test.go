package wire

import "testing"

func TestErrorCodeStringAndError(t *testing.T) {
	if Success.String() != "Success" {
		t.Errorf("Success.String() = %q", Success.String())
	}
	if CameraBusy.Error() != "Camera busy" {
		t.Errorf("CameraBusy.Error() = %q", CameraBusy.Error())
	}
	if got := ErrorCode(250).String(); got != "Undefined" {
		t.Errorf("unmapped code String() = %q, want Undefined", got)
	}
}
