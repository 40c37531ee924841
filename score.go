package quizanything

import (
	"fmt"
	"math"
	"strings"
)

// Score computes the final report for a set of questions and answers.
// Pure: the same inputs always yield the same report. An unanswered
// question is always incorrect.
func Score(questions []Question, answers []int) ScoreReport {
	correct := 0
	perQuestion := make([]QuestionResult, 0, len(questions))
	var missed []int

	for i, q := range questions {
		answer := Unanswered
		if i < len(answers) {
			answer = answers[i]
		}
		isCorrect := answer == q.CorrectAnswer
		if isCorrect {
			correct++
		} else {
			missed = append(missed, i+1)
		}

		userAnswer := "Not answered"
		if answer != Unanswered && answer >= 0 && answer < len(q.Options) {
			userAnswer = q.Options[answer]
		}
		correctAnswer := ""
		if q.CorrectAnswer >= 0 && q.CorrectAnswer < len(q.Options) {
			correctAnswer = q.Options[q.CorrectAnswer]
		}

		perQuestion = append(perQuestion, QuestionResult{
			Number:        i + 1,
			Question:      q.Text,
			UserChoice:    answer,
			CorrectChoice: q.CorrectAnswer,
			UserAnswer:    userAnswer,
			CorrectAnswer: correctAnswer,
			IsCorrect:     isCorrect,
			Explanation:   q.Explanation,
		})
	}

	total := len(questions)
	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(correct) / float64(total) * 100))
	}

	return ScoreReport{
		CorrectCount:     correct,
		Total:            total,
		Percentage:       percentage,
		Level:            performanceLevel(percentage),
		PerQuestion:      perQuestion,
		Insights:         insights(percentage, missed, total),
		StrongAreas:      strongAreas(correct, total),
		ImprovementAreas: improvementAreas(missed, total),
	}
}

func performanceLevel(percentage int) PerformanceLevel {
	switch {
	case percentage >= 90:
		return LevelExcellent
	case percentage >= 75:
		return LevelGood
	case percentage >= 60:
		return LevelFair
	default:
		return LevelNeedsImprovement
	}
}

func insights(percentage int, missed []int, total int) []string {
	var out []string

	switch {
	case percentage == 100:
		out = append(out, "Outstanding performance! You've mastered this topic completely.")
	case percentage >= 90:
		out = append(out, "Excellent work! You have a strong grasp of the material.")
	case percentage >= 75:
		out = append(out, "Good performance! A few areas could use some review.")
	case percentage >= 60:
		out = append(out, "Fair performance. Consider spending more time studying this topic.")
	default:
		out = append(out, "This topic needs more attention. Don't worry - practice makes perfect!")
	}

	if len(missed) > 0 {
		plural := ""
		if len(missed) > 1 {
			plural = "s"
		}
		out = append(out, fmt.Sprintf("Focus on understanding the %d missed question%s to improve your knowledge.", len(missed), plural))
	}

	if total == 3 {
		out = append(out, "Try the full 20-question version for a more comprehensive assessment!")
	}
	return out
}

func strongAreas(correct, total int) []string {
	if correct == 0 {
		return nil
	}

	plural := ""
	if correct > 1 {
		plural = "s"
	}
	out := []string{fmt.Sprintf("Successfully answered %d question%s correctly", correct, plural)}

	switch {
	case correct == total:
		out = append(out, "Perfect score! Excellent mastery of the subject matter")
	case float64(correct) >= float64(total)*0.8:
		out = append(out, "Strong understanding demonstrated across most topics")
	}
	return out
}

func improvementAreas(missed []int, total int) []string {
	if len(missed) == 0 {
		return nil
	}

	nums := make([]string, len(missed))
	for i, n := range missed {
		nums[i] = fmt.Sprintf("%d", n)
	}
	out := []string{fmt.Sprintf("Review questions %s for better understanding", strings.Join(nums, ", "))}

	if float64(len(missed)) >= float64(total)*0.5 {
		out = append(out, "Consider reviewing the material more thoroughly before retaking")
	}
	return out
}
