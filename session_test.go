package quizanything

import (
	"errors"
	"testing"
)

func sampleQuestions(n int) []Question {
	out := make([]Question, n)
	for i := range out {
		out[i] = Question{
			Text:          "q",
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: i % 4,
			Explanation:   "e",
		}
	}
	return out
}

func TestSessionLifecycle(t *testing.T) {
	s := NewQuizSession()
	if s.State() != SessionEmpty {
		t.Fatalf("new session state = %v, want empty", s.State())
	}

	if err := s.Answer(0, 1); err == nil {
		t.Fatal("Answer on empty session succeeded")
	}
	if _, err := s.Submit(false); err == nil {
		t.Fatal("Submit on empty session succeeded")
	}

	if err := s.Load(sampleQuestions(3)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.State() != SessionActive {
		t.Fatalf("state after load = %v, want active", s.State())
	}
	if err := s.Load(sampleQuestions(3)); err == nil {
		t.Fatal("second Load succeeded, want error")
	}

	for i := 0; i < 3; i++ {
		if err := s.Answer(i, i%4); err != nil {
			t.Fatalf("Answer(%d): %v", i, err)
		}
	}
	report, err := s.Submit(false)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if report.CorrectCount != 3 {
		t.Fatalf("correct = %d, want 3", report.CorrectCount)
	}
	if s.State() != SessionCompleted {
		t.Fatalf("state after submit = %v, want completed", s.State())
	}

	if err := s.Answer(0, 2); err == nil {
		t.Fatal("Answer after submit succeeded")
	}
	if _, err := s.Submit(true); err == nil {
		t.Fatal("double Submit succeeded")
	}

	got, ok := s.Report()
	if !ok || got.CorrectCount != 3 {
		t.Fatalf("Report = %+v, %v", got, ok)
	}
}

func TestSessionNavigationClampsAndKeepsAnswers(t *testing.T) {
	s := NewQuizSession()
	if err := s.Load(sampleQuestions(3)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Retreat at the first question stays put.
	if idx := s.Retreat(); idx != 0 {
		t.Fatalf("Retreat at start = %d, want 0", idx)
	}

	// Answer 0 is a real choice and must survive navigation.
	if err := s.Answer(0, 0); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	s.Advance()
	if idx := s.Retreat(); idx != 0 {
		t.Fatalf("Retreat = %d, want 0", idx)
	}
	_, idx, total, prior := s.Current()
	if idx != 0 || total != 3 || prior != 0 {
		t.Fatalf("Current = idx %d total %d prior %d, want 0 3 0", idx, total, prior)
	}

	// Advance clamps at the last question.
	for i := 0; i < 10; i++ {
		s.Advance()
	}
	if _, idx, _, _ := s.Current(); idx != 2 {
		t.Fatalf("cursor = %d after repeated Advance, want 2", idx)
	}
}

func TestSessionAnswerValidation(t *testing.T) {
	s := NewQuizSession()
	if err := s.Load(sampleQuestions(2)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := s.Answer(5, 0); err == nil {
		t.Fatal("out-of-range index accepted")
	}
	if err := s.Answer(0, 4); err == nil {
		t.Fatal("choice 4 accepted")
	}
	if err := s.Answer(0, -2); err == nil {
		t.Fatal("choice -2 accepted")
	}
	// Clearing an answer back to unanswered is allowed.
	if err := s.Answer(0, 1); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if err := s.Answer(0, Unanswered); err != nil {
		t.Fatalf("Answer(Unanswered): %v", err)
	}
	if s.UnansweredCount() != 2 {
		t.Fatalf("unanswered = %d, want 2", s.UnansweredCount())
	}
	// Overwriting is idempotent.
	if err := s.Answer(0, 3); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if err := s.Answer(0, 3); err != nil {
		t.Fatalf("repeat Answer: %v", err)
	}
}

func TestSessionSubmitUnansweredNeedsForce(t *testing.T) {
	s := NewQuizSession()
	if err := s.Load(sampleQuestions(4)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := s.Answer(0, 0); err != nil {
		t.Fatalf("Answer: %v", err)
	}

	_, err := s.Submit(false)
	var unanswered *UnansweredError
	if !errors.As(err, &unanswered) {
		t.Fatalf("got %v, want UnansweredError", err)
	}
	if unanswered.Unanswered != 3 {
		t.Fatalf("unanswered = %d, want 3", unanswered.Unanswered)
	}
	if s.State() != SessionActive {
		t.Fatalf("refused submit changed state to %v", s.State())
	}

	report, err := s.Submit(true)
	if err != nil {
		t.Fatalf("forced Submit: %v", err)
	}
	if report.Total != 4 || report.CorrectCount != 1 {
		t.Fatalf("report = %d/%d, want 1/4", report.CorrectCount, report.Total)
	}
}

func TestSessionResetAllowsReload(t *testing.T) {
	s := NewQuizSession()
	if err := s.Load(sampleQuestions(2)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := s.Submit(true); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	s.Reset()
	if s.State() != SessionEmpty {
		t.Fatalf("state after reset = %v, want empty", s.State())
	}
	if _, ok := s.Report(); ok {
		t.Fatal("report survived reset")
	}
	if err := s.Load(sampleQuestions(5)); err != nil {
		t.Fatalf("Load after reset: %v", err)
	}
}

func TestSessionQuestionsAreIsolated(t *testing.T) {
	original := sampleQuestions(2)
	s := NewQuizSession()
	if err := s.Load(original); err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Mutating the caller's slice must not reach the session.
	original[0].Text = "mutated"
	if copy := s.Questions(); copy[0].Text == "mutated" {
		t.Fatal("session shares the caller's question slice")
	}

	// Mutating the returned copy must not reach the session either.
	view := s.Questions()
	view[1].Text = "also mutated"
	if again := s.Questions(); again[1].Text == "also mutated" {
		t.Fatal("Questions returned the internal slice")
	}
}

func TestSessionLoadRejectsEmptySet(t *testing.T) {
	s := NewQuizSession()
	if err := s.Load(nil); err == nil {
		t.Fatal("Load(nil) succeeded")
	}
	if s.State() != SessionEmpty {
		t.Fatalf("failed load changed state to %v", s.State())
	}
}
