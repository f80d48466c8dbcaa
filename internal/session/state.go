package session

import (
	"fmt"
	"strings"
)

// Phase represents the current phase of the session.
type Phase int

const (
	PhaseLoading    Phase = iota // Waiting for the question list
	PhaseInProgress              // Serving questions
	PhaseFinished                // Every question answered, or nothing to ask
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseInProgress:
		return "in-progress"
	case PhaseFinished:
		return "finished"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// WriteMode controls when an answer is persisted relative to advancing the
// session.
type WriteMode int

const (
	// WriteOptimistic advances first and persists in the background.
	// Failures are reported later and never rolled back.
	WriteOptimistic WriteMode = iota

	// WriteConfirm persists first and only advances once the write
	// succeeded.
	WriteConfirm
)

func (m WriteMode) String() string {
	if m == WriteConfirm {
		return "confirm"
	}
	return "optimistic"
}

// ParseWriteMode maps "optimistic" or "confirm" to a WriteMode. An empty
// string selects the default.
func ParseWriteMode(s string) (WriteMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "optimistic":
		return WriteOptimistic, nil
	case "confirm":
		return WriteConfirm, nil
	}
	return 0, fmt.Errorf("unknown write mode %q", s)
}
