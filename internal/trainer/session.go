// Package trainer runs a practice attempt: the cube is scrambled with the
// inverse of an algorithm and every move the trainee makes is checked against
// the next expected move.
package trainer

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubetrainer"
)

// Errors
var (
	ErrEmptyAlgorithm = errors.New("trainer: algorithm has no moves")
	ErrBusy           = errors.New("trainer: a move is already in flight")
	ErrNoPendingMove  = errors.New("trainer: no move in flight")
)

// Mode selects how much help the trainee gets.
type Mode string

const (
	ModeTraining Mode = "training" // remaining steps shown
	ModeExam     Mode = "exam"     // remaining steps hidden
)

// ParseMode converts a mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeTraining, ModeExam:
		return Mode(s), nil
	}
	return "", fmt.Errorf("trainer: unknown mode %q", s)
}

// Verdict is the outcome of submitting one move.
type Verdict int

const (
	VerdictCorrect Verdict = iota // matched the expected move
	VerdictWrong                  // rejected, state unchanged
	VerdictFree                   // algorithm already finished; move accepted as free play
	VerdictDemo                   // move played by the demo
)

func (v Verdict) String() string {
	switch v {
	case VerdictCorrect:
		return "correct"
	case VerdictWrong:
		return "wrong"
	case VerdictFree:
		return "free"
	case VerdictDemo:
		return "demo"
	default:
		return "unknown"
	}
}

// Feedback describes what happened to a submitted or committed move.
type Feedback struct {
	Verdict  Verdict
	Move     cubetrainer.Move
	Expected cubetrainer.Move // zero when there is nothing left to expect
	Step     int              // expected moves completed so far
	Total    int

	// Set by the Commit that lands the last expected move.
	Completed bool
	Elapsed   time.Duration
	Stars     int
}

// Scores accumulate across attempts of the same session.
type Scores struct {
	Streak     int           // completions since the last wrong move
	BestStreak int           // highest streak reached
	Stars      int           // best star rating reached
	LastTime   time.Duration // time of the last completion
}

// Attempt summarizes the current attempt for storage.
type Attempt struct {
	AlgorithmID string
	Mode        Mode
	StartedAt   time.Time
	Duration    time.Duration
	Moves       int
	Mistakes    int
	Stars       int
	Completed   bool
}

// Stars rates a completion: 3 under 1.5s per move, 2 under 3s per move,
// otherwise 1.
func Stars(elapsed time.Duration, moves int) int {
	perMove := time.Duration(moves)
	switch {
	case elapsed < perMove*1500*time.Millisecond:
		return 3
	case elapsed < perMove*3*time.Second:
		return 2
	default:
		return 1
	}
}

// Session is one trainee practising one algorithm. A move is first
// submitted, which validates it and marks it in flight, and later committed,
// which applies it to the cube. No other move is accepted while one is in
// flight. A Session is not safe for concurrent use.
type Session struct {
	alg   cubetrainer.Algorithm
	mode  Mode
	now   func() time.Time
	log   *logrus.Entry
	start cubetrainer.State

	state     cubetrainer.State
	step      int
	pending   *cubetrainer.Move
	demo      bool
	running   bool
	startedAt time.Time
	elapsed   time.Duration
	moves     int
	mistakes  int
	stars     int
	completed bool

	scores Scores
}

// Option configures a Session.
type Option func(*Session)

// WithMode sets the training mode (default ModeTraining).
func WithMode(m Mode) Option {
	return func(s *Session) {
		s.mode = m
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithLogger sets the logger used for attempt events.
func WithLogger(log *logrus.Entry) Option {
	return func(s *Session) {
		s.log = log
	}
}

// New starts a session for alg with the cube scrambled so that alg solves it.
func New(alg cubetrainer.Algorithm, opts ...Option) (*Session, error) {
	if len(alg.Moves) == 0 {
		return nil, ErrEmptyAlgorithm
	}

	start, err := alg.Scramble()
	if err != nil {
		return nil, fmt.Errorf("failed to scramble %s: %w", alg.ID, err)
	}

	s := &Session{
		alg:   alg,
		mode:  ModeTraining,
		now:   time.Now,
		start: start,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		s.log = logrus.NewEntry(quiet)
	}
	s.log = s.log.WithField("algorithm", alg.ID)

	s.Reset()
	return s, nil
}

// Reset rescrambles the cube and clears the attempt. Scores are kept.
func (s *Session) Reset() {
	s.state = s.start
	s.step = 0
	s.pending = nil
	s.demo = false
	s.running = false
	s.startedAt = time.Time{}
	s.elapsed = 0
	s.moves = 0
	s.mistakes = 0
	s.stars = 0
	s.completed = false
}

// Submit checks m against the next expected move. A correct move, or any
// move once the algorithm is finished, becomes the in-flight move; a wrong
// move is rejected and resets the streak.
func (s *Session) Submit(m cubetrainer.Move) (Feedback, error) {
	if !m.Valid() {
		return Feedback{}, fmt.Errorf("%w: %v", cubetrainer.ErrInvalidMove, m)
	}
	if s.pending != nil || s.demo {
		return Feedback{}, ErrBusy
	}

	if !s.running && s.step == 0 && !s.completed {
		s.running = true
		s.startedAt = s.now()
		s.log.Debug("attempt started")
	}

	fb := Feedback{Move: m, Step: s.step, Total: len(s.alg.Moves)}

	if s.step >= len(s.alg.Moves) {
		fb.Verdict = VerdictFree
		s.pending = &m
		return fb, nil
	}

	fb.Expected = s.alg.Moves[s.step]
	if m != fb.Expected {
		fb.Verdict = VerdictWrong
		s.mistakes++
		s.scores.Streak = 0
		s.log.WithFields(logrus.Fields{
			"step":     s.step + 1,
			"move":     m.Notation(),
			"expected": fb.Expected.Notation(),
		}).Debug("wrong move")
		return fb, nil
	}

	fb.Verdict = VerdictCorrect
	s.pending = &m
	return fb, nil
}

// Commit applies the in-flight move to the cube.
func (s *Session) Commit() (Feedback, error) {
	if s.pending == nil {
		return Feedback{}, ErrNoPendingMove
	}
	m := *s.pending

	next, err := cubetrainer.ApplyMove(s.state, m)
	if err != nil {
		return Feedback{}, err
	}
	s.pending = nil
	s.state = next
	s.moves++

	fb := Feedback{Move: m, Total: len(s.alg.Moves)}

	if s.demo {
		s.step++
		if s.step >= len(s.alg.Moves) {
			s.demo = false
		}
		fb.Verdict = VerdictDemo
		fb.Step = s.step
		return fb, nil
	}

	if s.step >= len(s.alg.Moves) {
		fb.Verdict = VerdictFree
		fb.Step = s.step
		return fb, nil
	}

	s.step++
	fb.Verdict = VerdictCorrect
	fb.Step = s.step
	if s.step == len(s.alg.Moves) {
		s.finish()
		fb.Completed = true
		fb.Elapsed = s.elapsed
		fb.Stars = s.stars
	}
	return fb, nil
}

func (s *Session) finish() {
	s.running = false
	s.elapsed = s.now().Sub(s.startedAt)
	s.stars = Stars(s.elapsed, len(s.alg.Moves))
	s.completed = true

	s.scores.LastTime = s.elapsed
	s.scores.Stars = max(s.scores.Stars, s.stars)
	s.scores.Streak++
	s.scores.BestStreak = max(s.scores.BestStreak, s.scores.Streak)

	s.log.WithFields(logrus.Fields{
		"elapsed":  s.elapsed.Round(time.Millisecond),
		"stars":    s.stars,
		"mistakes": s.mistakes,
		"streak":   s.scores.Streak,
	}).Info("attempt completed")
}

// StartDemo rescrambles the cube and plays the algorithm through
// NextDemoMove and Commit. Demo moves are not scored.
func (s *Session) StartDemo() error {
	if s.pending != nil {
		return ErrBusy
	}
	s.Reset()
	s.demo = true
	s.log.Debug("demo started")
	return nil
}

// NextDemoMove puts the next demo move in flight. It returns false when no
// demo is running or a move is already in flight.
func (s *Session) NextDemoMove() (cubetrainer.Move, bool) {
	if !s.demo || s.pending != nil {
		return cubetrainer.Move{}, false
	}
	if s.step >= len(s.alg.Moves) {
		s.demo = false
		return cubetrainer.Move{}, false
	}
	m := s.alg.Moves[s.step]
	s.pending = &m
	return m, true
}

// Hint returns the next expected move. It is available in both modes; exam
// mode only hides the remaining steps from display.
func (s *Session) Hint() (cubetrainer.Move, bool) {
	if s.step >= len(s.alg.Moves) {
		return cubetrainer.Move{}, false
	}
	return s.alg.Moves[s.step], true
}

// Algorithm returns the algorithm being practised.
func (s *Session) Algorithm() cubetrainer.Algorithm { return s.alg }

// Mode returns the session mode.
func (s *Session) Mode() Mode { return s.mode }

// State returns the current cube.
func (s *Session) State() cubetrainer.State { return s.state }

// Step returns how many expected moves have been committed.
func (s *Session) Step() int { return s.step }

// Busy reports whether a move is in flight or a demo is playing.
func (s *Session) Busy() bool { return s.pending != nil || s.demo }

// Pending returns the in-flight move.
func (s *Session) Pending() (cubetrainer.Move, bool) {
	if s.pending == nil {
		return cubetrainer.Move{}, false
	}
	return *s.pending, true
}

// Demoing reports whether a demo is playing.
func (s *Session) Demoing() bool { return s.demo }

// Complete reports whether the trainee finished the algorithm in this attempt.
func (s *Session) Complete() bool { return s.completed }

// Started reports whether the attempt timer has been started.
func (s *Session) Started() bool { return s.running || s.completed }

// Elapsed returns the attempt time so far, or the final time once complete.
func (s *Session) Elapsed() time.Duration {
	if s.running {
		return s.now().Sub(s.startedAt)
	}
	return s.elapsed
}

// Scores returns the accumulated scores.
func (s *Session) Scores() Scores { return s.scores }

// Attempt summarizes the current attempt.
func (s *Session) Attempt() Attempt {
	return Attempt{
		AlgorithmID: s.alg.ID,
		Mode:        s.mode,
		StartedAt:   s.startedAt,
		Duration:    s.Elapsed(),
		Moves:       s.moves,
		Mistakes:    s.mistakes,
		Stars:       s.stars,
		Completed:   s.completed,
	}
}
