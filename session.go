package quizanything

import (
	"errors"
	"sync"
)

// SessionState is the lifecycle phase of a quiz session.
type SessionState string

const (
	SessionEmpty     SessionState = "empty"
	SessionActive    SessionState = "active"
	SessionCompleted SessionState = "completed"
)

// Unanswered marks a question the user has not answered.
const Unanswered = -1

var (
	errSessionNotEmpty  = errors.New("session already has questions loaded")
	errSessionNotActive = errors.New("session is not active")
)

// QuizSession holds one quiz attempt: the question set, the user's
// answers, and the navigation cursor. Questions are immutable after Load;
// retaking a quiz means a brand-new session, never mutation of this one.
type QuizSession struct {
	mu        sync.Mutex
	state     SessionState
	questions []Question
	answers   []int
	current   int
	report    *ScoreReport
}

// NewQuizSession creates an empty session.
func NewQuizSession() *QuizSession {
	return &QuizSession{state: SessionEmpty}
}

// State returns the current lifecycle phase.
func (s *QuizSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Load populates an empty session atomically: all answers reset to
// unanswered, cursor to the first question, state to active.
func (s *QuizSession) Load(questions []Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != SessionEmpty {
		return errSessionNotEmpty
	}
	if len(questions) == 0 {
		return errors.New("cannot load an empty question set")
	}

	s.questions = append([]Question(nil), questions...)
	s.answers = make([]int, len(s.questions))
	for i := range s.answers {
		s.answers[i] = Unanswered
	}
	s.current = 0
	s.report = nil
	s.state = SessionActive
	return nil
}

// Answer records the selected option for a question. Overwriting an
// earlier answer is allowed and idempotent.
func (s *QuizSession) Answer(index, choice int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != SessionActive {
		return errSessionNotActive
	}
	if index < 0 || index >= len(s.questions) {
		return errors.New("question index out of range")
	}
	if choice != Unanswered && (choice < 0 || choice > 3) {
		return errors.New("choice must be 0-3")
	}
	s.answers[index] = choice
	return nil
}

// Advance moves to the next question, clamped at the last one, and
// returns the new index.
func (s *QuizSession) Advance() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == SessionActive && s.current < len(s.questions)-1 {
		s.current++
	}
	return s.current
}

// Retreat moves to the previous question, clamped at the first one, and
// returns the new index.
func (s *QuizSession) Retreat() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == SessionActive && s.current > 0 {
		s.current--
	}
	return s.current
}

// Current returns the question at the cursor together with its index, the
// total count, and the recorded answer (Unanswered when none).
func (s *QuizSession) Current() (Question, int, int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.questions) == 0 {
		return Question{}, 0, 0, Unanswered
	}
	return s.questions[s.current], s.current, len(s.questions), s.answers[s.current]
}

// UnansweredCount reports how many questions have no recorded answer.
func (s *QuizSession) UnansweredCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unansweredLocked()
}

func (s *QuizSession) unansweredLocked() int {
	n := 0
	for _, a := range s.answers {
		if a == Unanswered {
			n++
		}
	}
	return n
}

// Submit finalizes the quiz. When unanswered questions remain and force
// is false, it returns UnansweredError so the caller can confirm intent
// and retry. On success the session transitions to completed and holds
// the finalized score report.
func (s *QuizSession) Submit(force bool) (*ScoreReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != SessionActive {
		return nil, errSessionNotActive
	}
	if n := s.unansweredLocked(); n > 0 && !force {
		return nil, &UnansweredError{Unanswered: n}
	}

	report := Score(s.questions, s.answers)
	s.report = &report
	s.state = SessionCompleted
	return s.report, nil
}

// Report returns the finalized score report of a completed session.
func (s *QuizSession) Report() (*ScoreReport, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != SessionCompleted {
		return nil, false
	}
	return s.report, true
}

// Reset discards everything and returns the session to empty. It is the
// only transition out of the completed state.
func (s *QuizSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.questions = nil
	s.answers = nil
	s.current = 0
	s.report = nil
	s.state = SessionEmpty
}

// Questions returns a copy of the loaded question set.
func (s *QuizSession) Questions() []Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Question(nil), s.questions...)
}
