package session

import "time"

// Summary holds the data displayed when a session ends.
type Summary struct {
	Total       int
	Answered    int
	Correct     int
	Accuracy    float64
	Duration    time.Duration
	WriteErrors int
}

// Summary builds a Summary from the current state.
func (s *Session) Summary() Summary {
	s.mu.Lock()
	sum := Summary{
		Total:    len(s.questions),
		Answered: s.index,
		Correct:  s.score,
	}
	switch {
	case s.started.IsZero():
	case s.finished.IsZero():
		sum.Duration = time.Since(s.started)
	default:
		sum.Duration = s.finished.Sub(s.started)
	}
	s.mu.Unlock()

	if sum.Answered > 0 {
		sum.Accuracy = float64(sum.Correct) / float64(sum.Answered)
	}
	sum.WriteErrors = len(s.Failures())
	return sum
}
