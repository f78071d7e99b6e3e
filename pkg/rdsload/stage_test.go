package rdsload_test

import (
	"testing"

	"github.com/vvka-141/rdsload/pkg/rdsload"
)

func TestStage_CanAdvanceTo(t *testing.T) {
	tests := []struct {
		from, to rdsload.Stage
		want     bool
	}{
		{rdsload.StageStart, rdsload.StageConfigResolved, true},
		{rdsload.StageConfigResolved, rdsload.StageCredentialResolved, true},
		{rdsload.StageCredentialResolved, rdsload.StageConnected, true},
		{rdsload.StageConnected, rdsload.StageDataRead, true},
		{rdsload.StageDataRead, rdsload.StageWritten, true},
		{rdsload.StageWritten, rdsload.StageDone, true},
		{rdsload.StageStart, rdsload.StageConnected, false},
		{rdsload.StageConnected, rdsload.StageConfigResolved, false},
		{rdsload.StageConnected, rdsload.StageConnected, false},
		{rdsload.StageStart, rdsload.StageFailed, true},
		{rdsload.StageWritten, rdsload.StageFailed, true},
		{rdsload.StageDone, rdsload.StageFailed, false},
		{rdsload.StageFailed, rdsload.StageStart, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			if got := tt.from.CanAdvanceTo(tt.to); got != tt.want {
				t.Errorf("CanAdvanceTo = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStage_Label(t *testing.T) {
	labels := map[rdsload.Stage]string{
		rdsload.StageStart:              "config",
		rdsload.StageConfigResolved:     "secret",
		rdsload.StageCredentialResolved: "connect",
		rdsload.StageConnected:          "read",
		rdsload.StageDataRead:           "write",
	}
	for stage, want := range labels {
		if got := stage.Label(); got != want {
			t.Errorf("%v.Label() = %q, want %q", stage, got, want)
		}
	}
}

func TestStage_StringUnknown(t *testing.T) {
	if got := rdsload.Stage(42).String(); got != "Unknown(42)" {
		t.Errorf("String() = %q", got)
	}
}
