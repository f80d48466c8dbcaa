// Package session runs a single quiz over a fixed list of questions.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mcqtrainer/internal/answer"
	"github.com/abhisek/mcqtrainer/internal/question"
	"github.com/abhisek/mcqtrainer/internal/selection"
	"github.com/abhisek/mcqtrainer/internal/worker"
)

// ErrAlreadyStarted is returned when Begin or Start is called twice.
var ErrAlreadyStarted = errors.New("session already started")

// writeBuffer bounds the number of queued background writes.
const writeBuffer = 64

// Recorder persists a single answer.
type Recorder interface {
	Record(ctx context.Context, id int, chosen string, correct bool) (question.Question, error)
}

// Loader produces the question list for a session.
type Loader interface {
	Dispatch(ctx context.Context, req selection.Request) (selection.Outcome, error)
}

// Config holds session options.
type Config struct {
	WriteMode WriteMode

	// Rand drives the shuffle. Nil uses the global source.
	Rand *rand.Rand
}

// Outcome describes the effect of one Submit call.
type Outcome struct {
	// Question is the snapshot that was answered.
	Question question.Question

	// Updated holds the counters after this answer. In optimistic mode it
	// is computed locally; in confirm mode it is the stored row.
	Updated question.Question

	Chosen   string
	Correct  bool
	Finished bool

	// Ignored is set when the session was not accepting answers.
	Ignored bool
}

// Session is a quiz over an ordered snapshot of questions.
type Session struct {
	mu sync.Mutex

	id       uuid.UUID
	cfg      Config
	recorder Recorder
	logger   *slog.Logger

	phase     Phase
	questions []question.Question
	index     int
	score     int
	started   time.Time
	finished  time.Time
	closed    bool

	writes        *worker.Pool[error]
	collectorDone chan struct{}
	failMu        sync.Mutex
	failures      []error
}

// New creates a session in the loading phase.
func New(recorder Recorder, cfg Config, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Session{
		id:            uuid.New(),
		cfg:           cfg,
		recorder:      recorder,
		phase:         PhaseLoading,
		writes:        worker.NewPool[error](1, writeBuffer),
		collectorDone: make(chan struct{}),
	}
	s.logger = logger.With("session_id", s.id.String())
	go s.collect()
	return s
}

func (s *Session) collect() {
	defer close(s.collectorDone)
	for r := range s.writes.Results() {
		if r.Output == nil {
			continue
		}
		s.logger.Warn("background answer write failed", "job", r.JobID, "error", r.Output)
		s.failMu.Lock()
		s.failures = append(s.failures, r.Output)
		s.failMu.Unlock()
	}
}

// Start loads questions for req and begins the session.
func (s *Session) Start(ctx context.Context, loader Loader, req selection.Request) error {
	if req.Mode == selection.ModeResetStats {
		return fmt.Errorf("start session: %s is not a quiz mode: %w", req.Mode, selection.ErrInvalidScope)
	}
	out, err := loader.Dispatch(ctx, req)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	return s.Begin(out.Questions)
}

// Begin shuffles questions and starts serving them. An empty list finishes
// the session immediately with a score of 0 out of 0.
func (s *Session) Begin(questions []question.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseLoading || s.closed {
		return ErrAlreadyStarted
	}

	qs := make([]question.Question, len(questions))
	copy(qs, questions)
	shuffle := rand.Shuffle
	if s.cfg.Rand != nil {
		shuffle = s.cfg.Rand.Shuffle
	}
	shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })

	s.questions = qs
	s.index = 0
	s.score = 0
	s.started = time.Now()
	s.phase = PhaseInProgress
	if len(qs) == 0 {
		s.finish()
	}

	s.logger.Info("session started", "questions", len(qs), "write_mode", s.cfg.WriteMode.String())
	return nil
}

func (s *Session) finish() {
	s.phase = PhaseFinished
	s.finished = time.Now()
}

// Current returns the question being asked. The second value is false
// when there is no current question.
func (s *Session) Current() (question.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseInProgress || s.index >= len(s.questions) {
		return question.Question{}, false
	}
	return s.questions[s.index], true
}

// Submit answers the current question with chosen.
func (s *Session) Submit(ctx context.Context, chosen string) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseInProgress || s.closed || s.index >= len(s.questions) {
		return Outcome{Ignored: true, Finished: s.phase == PhaseFinished}, nil
	}

	q := s.questions[s.index]
	correct := q.IsCorrect(chosen)
	out := Outcome{Question: q, Chosen: chosen, Correct: correct}

	switch s.cfg.WriteMode {
	case WriteConfirm:
		updated, err := s.recorder.Record(ctx, q.ID, chosen, correct)
		if err != nil {
			s.logger.Error("answer write failed", "question_id", q.ID, "error", err)
			return Outcome{}, fmt.Errorf("submit answer: %w", err)
		}
		out.Updated = updated
	default:
		out.Updated = answer.Apply(q, chosen, correct)
		writeCtx := context.WithoutCancel(ctx)
		job := fmt.Sprintf("q%d-%d", q.ID, s.index)
		err := s.writes.Submit(job, func() error {
			_, err := s.recorder.Record(writeCtx, q.ID, chosen, correct)
			return err
		})
		if err != nil {
			s.recordFailure(fmt.Errorf("%w: queue question %d: %w", answer.ErrWriteFailed, q.ID, err))
		}
	}

	if correct {
		s.score++
	}
	s.index++
	if s.index >= len(s.questions) {
		s.finish()
		s.logger.Info("session finished", "score", s.score, "total", len(s.questions))
	}
	out.Finished = s.phase == PhaseFinished
	return out, nil
}

func (s *Session) recordFailure(err error) {
	s.failMu.Lock()
	s.failures = append(s.failures, err)
	s.failMu.Unlock()
}

// Failures returns the background write errors observed so far.
func (s *Session) Failures() []error {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	out := make([]error, len(s.failures))
	copy(out, s.failures)
	return out
}

// Close stops accepting answers, waits for queued writes and returns
// their joined errors. It may be called more than once.
func (s *Session) Close() error {
	s.mu.Lock()
	wasClosed := s.closed
	s.closed = true
	if !wasClosed && s.phase == PhaseInProgress {
		s.logger.Info("session abandoned", "answered", s.index, "total", len(s.questions))
	}
	s.mu.Unlock()

	s.writes.Close()
	<-s.collectorDone
	return errors.Join(s.Failures()...)
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Score returns the number of correct answers so far.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// Total returns the number of questions in the session.
func (s *Session) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.questions)
}

// Index returns the zero-based position of the current question, which
// equals the number of answered questions.
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}
