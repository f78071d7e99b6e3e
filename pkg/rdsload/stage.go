package rdsload

import "fmt"

// Stage is a state of the load pipeline. Stages advance strictly forward:
//
//	START -> CONFIG_RESOLVED -> CREDENTIAL_RESOLVED -> CONNECTED -> DATA_READ -> WRITTEN -> DONE
//
// FAILED is reachable from every non-terminal stage. A failed run is not
// resumable.
type Stage int

const (
	StageStart Stage = iota
	StageConfigResolved
	StageCredentialResolved
	StageConnected
	StageDataRead
	StageWritten
	StageDone
	StageFailed
)

// String returns the state name.
func (s Stage) String() string {
	switch s {
	case StageStart:
		return "START"
	case StageConfigResolved:
		return "CONFIG_RESOLVED"
	case StageCredentialResolved:
		return "CREDENTIAL_RESOLVED"
	case StageConnected:
		return "CONNECTED"
	case StageDataRead:
		return "DATA_READ"
	case StageWritten:
		return "WRITTEN"
	case StageDone:
		return "DONE"
	case StageFailed:
		return "FAILED"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Label returns the short name of the work performed to leave this stage,
// used in the "stage" log field: a failure while in StageConfigResolved
// happened during secret resolution, and so on.
func (s Stage) Label() string {
	switch s {
	case StageStart:
		return "config"
	case StageConfigResolved:
		return "secret"
	case StageCredentialResolved:
		return "connect"
	case StageConnected:
		return "read"
	case StageDataRead:
		return "write"
	case StageWritten, StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether no further transition is possible.
func (s Stage) IsTerminal() bool {
	return s == StageDone || s == StageFailed
}

// CanAdvanceTo reports whether next is a legal transition from s.
func (s Stage) CanAdvanceTo(next Stage) bool {
	if s.IsTerminal() {
		return false
	}
	if next == StageFailed {
		return true
	}
	return next == s+1
}
