package quiz

import (
	"github.com/abhisek/mcqtrainer/internal/session"
)

// startedMsg is sent once the question list has been loaded.
type startedMsg struct {
	Err error
}

// answeredMsg is sent when an answer has been submitted to the session.
type answeredMsg struct {
	Outcome session.Outcome
	Err     error
}

// closedMsg is sent after the session has drained its pending writes.
type closedMsg struct {
	Summary session.Summary
	Err     error
}
