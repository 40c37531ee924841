package quizanything

import (
	"reflect"
	"strings"
	"testing"
)

func TestScorePerfect(t *testing.T) {
	questions := sampleQuestions(5)
	answers := []int{0, 1, 2, 3, 0}

	report := Score(questions, answers)

	if report.CorrectCount != 5 || report.Total != 5 || report.Percentage != 100 {
		t.Fatalf("report = %d/%d (%d%%), want 5/5 (100%%)", report.CorrectCount, report.Total, report.Percentage)
	}
	if report.Level != LevelExcellent {
		t.Fatalf("level = %v, want excellent", report.Level)
	}
	if len(report.ImprovementAreas) != 0 {
		t.Fatalf("perfect score has improvement areas: %v", report.ImprovementAreas)
	}
	foundPerfect := false
	for _, s := range report.StrongAreas {
		if strings.Contains(s, "Perfect score") {
			foundPerfect = true
		}
	}
	if !foundPerfect {
		t.Fatalf("missing perfect-score line: %v", report.StrongAreas)
	}
}

func TestScoreUnansweredIsIncorrect(t *testing.T) {
	questions := sampleQuestions(4)
	answers := []int{0, Unanswered, Unanswered, 3}

	report := Score(questions, answers)

	if report.CorrectCount != 2 {
		t.Fatalf("correct = %d, want 2", report.CorrectCount)
	}
	if report.PerQuestion[1].IsCorrect {
		t.Fatal("unanswered question scored correct")
	}
	if report.PerQuestion[1].UserAnswer != "Not answered" {
		t.Fatalf("user answer = %q, want Not answered", report.PerQuestion[1].UserAnswer)
	}
}

func TestScoreShortAnswerSliceTreatedAsUnanswered(t *testing.T) {
	report := Score(sampleQuestions(3), []int{0})
	if report.CorrectCount != 1 {
		t.Fatalf("correct = %d, want 1", report.CorrectCount)
	}
	if report.PerQuestion[2].UserAnswer != "Not answered" {
		t.Fatalf("missing answer not treated as unanswered: %+v", report.PerQuestion[2])
	}
}

func TestScorePercentageRounding(t *testing.T) {
	// 2 of 3 is 66.67%, which rounds to 67, landing in the fair tier.
	questions := sampleQuestions(3)
	report := Score(questions, []int{0, 1, 0})
	if report.Percentage != 67 {
		t.Fatalf("percentage = %d, want 67", report.Percentage)
	}
	if report.Level != LevelFair {
		t.Fatalf("level = %v, want fair", report.Level)
	}
}

func TestScorePerformanceTiers(t *testing.T) {
	cases := []struct {
		percentage int
		want       PerformanceLevel
	}{
		{100, LevelExcellent},
		{90, LevelExcellent},
		{89, LevelGood},
		{75, LevelGood},
		{74, LevelFair},
		{60, LevelFair},
		{59, LevelNeedsImprovement},
		{0, LevelNeedsImprovement},
	}
	for _, tc := range cases {
		if got := performanceLevel(tc.percentage); got != tc.want {
			t.Errorf("performanceLevel(%d) = %v, want %v", tc.percentage, got, tc.want)
		}
	}
}

func TestScoreInsights(t *testing.T) {
	questions := sampleQuestions(3)
	report := Score(questions, []int{0, 0, 0})

	joined := strings.Join(report.Insights, "\n")
	if !strings.Contains(joined, "missed question") {
		t.Fatalf("insights missing missed-question line: %v", report.Insights)
	}
	if !strings.Contains(joined, "Try the full 20-question version") {
		t.Fatalf("three-question quiz missing upsell line: %v", report.Insights)
	}

	// Longer quizzes never suggest trying the 20-question version.
	long := Score(sampleQuestions(10), make([]int, 10))
	if strings.Contains(strings.Join(long.Insights, "\n"), "20-question version") {
		t.Fatalf("ten-question quiz got the three-question insight: %v", long.Insights)
	}
}

func TestScoreImprovementAreasListMissedNumbers(t *testing.T) {
	questions := sampleQuestions(4) // correct answers 0,1,2,3
	report := Score(questions, []int{0, 0, 2, 0})

	if len(report.ImprovementAreas) == 0 {
		t.Fatal("no improvement areas for a half-missed quiz")
	}
	if !strings.Contains(report.ImprovementAreas[0], "2, 4") {
		t.Fatalf("missed question numbers not listed: %q", report.ImprovementAreas[0])
	}
	// Half missed triggers the retake advice.
	if len(report.ImprovementAreas) < 2 || !strings.Contains(report.ImprovementAreas[1], "retaking") {
		t.Fatalf("missing retake advice: %v", report.ImprovementAreas)
	}
}

func TestScoreZeroCorrectHasNoStrongAreas(t *testing.T) {
	questions := sampleQuestions(4) // correct answers 0,1,2,3
	report := Score(questions, []int{1, 0, 0, 0})
	if report.CorrectCount != 0 {
		t.Fatalf("correct = %d, want 0", report.CorrectCount)
	}
	if len(report.StrongAreas) != 0 {
		t.Fatalf("zero-correct report has strong areas: %v", report.StrongAreas)
	}
}

func TestScoreIsPure(t *testing.T) {
	questions := sampleQuestions(5)
	answers := []int{0, 1, 0, Unanswered, 0}

	first := Score(questions, answers)
	second := Score(questions, answers)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("Score is not deterministic for identical inputs")
	}
}
