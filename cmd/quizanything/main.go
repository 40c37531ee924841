package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"quizanything"
)

var allowedCounts = map[int]bool{3: true, 5: true, 10: true, 20: true}

func main() {
	var (
		topic      = flag.String("topic", "", "Quiz topic (topic mode)")
		file       = flag.String("file", "", "Path to a document to quiz on (file mode)")
		difficulty = flag.String("difficulty", "medium", "Difficulty level (easy, medium, hard)")
		questions  = flag.Int("questions", 10, "Number of questions (3, 5, 10, or 20)")
		verbose    = flag.Bool("verbose", false, "Enable verbose debugging output")
		transcript = flag.Bool("transcript", false, "Write raw LLM transcripts under ./log")
	)
	flag.Parse()

	// .env is optional local convenience; absence is fine.
	_ = godotenv.Load()

	if (*topic == "") == (*file == "") {
		log.Fatal("Provide exactly one of -topic or -file.")
	}
	if !allowedCounts[*questions] {
		log.Fatal("Question count must be 3, 5, 10, or 20.")
	}
	switch quizanything.Difficulty(*difficulty) {
	case quizanything.DifficultyEasy, quizanything.DifficultyMedium, quizanything.DifficultyHard:
	default:
		log.Fatal("Difficulty must be easy, medium, or hard.")
	}

	cfg, err := quizanything.LoadConfig()
	if err != nil {
		if errors.Is(err, quizanything.ErrCredentialMissing) {
			log.Fatal(err)
		}
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := zap.NewNop()
	if *verbose {
		logger, err = quizanything.NewLogger(cfg.Env)
		if err != nil {
			log.Fatalf("Failed to create logger: %v", err)
		}
	}
	defer logger.Sync()

	pipeline := quizanything.NewPipeline(cfg.APIKey)
	pipeline.SetLogger(logger.Sugar())
	pipeline.SetNotifier(terminalNotifier{})
	pipeline.SetModels(cfg.TopicModel, cfg.FileModel)
	pipeline.EnableTranscripts(*transcript)

	input := quizanything.Input{
		Topic:         *topic,
		Difficulty:    quizanything.Difficulty(*difficulty),
		QuestionCount: *questions,
	}
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			log.Fatalf("Failed to read file: %v", err)
		}
		input.FileName = *file
		input.FileData = data
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		session, err := createQuiz(pipeline, input, scanner)
		if err != nil {
			os.Exit(1)
		}
		if session == nil {
			return
		}

		runQuiz(session, scanner)

		if report, ok := session.Report(); ok {
			renderReport(report)
		}

		fmt.Print("\nPress R to retake with a fresh quiz, or Enter to exit: ")
		if !scanner.Scan() || strings.ToUpper(strings.TrimSpace(scanner.Text())) != "R" {
			return
		}
		// A retake is a brand-new request and session, never a reuse.
		fmt.Println()
	}
}

// createQuiz drives the pipeline, handling a clarification round when the
// input is ambiguous. A nil session with nil error means the user quit.
func createQuiz(pipeline *quizanything.Pipeline, input quizanything.Input, scanner *bufio.Scanner) (*quizanything.QuizSession, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	fmt.Println("Checking your topic...")
	result, err := pipeline.CreateQuiz(ctx, input)
	if err != nil {
		return nil, err
	}

	if len(result.Clarifications) > 0 {
		choice := askClarification(result.Clarifications, scanner)
		if choice == nil {
			input.SkipClarification = true
		} else {
			input.Framing = choice.Framing
		}

		fmt.Println("Creating your quiz...")
		result, err = pipeline.CreateQuiz(ctx, input)
		if err != nil {
			return nil, err
		}
	}
	return result.Session, nil
}

func askClarification(options []quizanything.ClarificationOption, scanner *bufio.Scanner) *quizanything.ClarificationOption {
	fmt.Println("\nYour topic can be quizzed from several angles:")
	for i, opt := range options {
		fmt.Printf("  %d) %s - %s\n", i+1, opt.Label, opt.Description)
	}
	fmt.Print("Pick one (or press Enter for a general mix): ")

	if !scanner.Scan() {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || n < 1 || n > len(options) {
		return nil
	}
	return &options[n-1]
}

var optionLetters = []string{"A", "B", "C", "D"}

// runQuiz walks the user through the loaded session until it is
// submitted or abandoned.
func runQuiz(session *quizanything.QuizSession, scanner *bufio.Scanner) {
	for session.State() == quizanything.SessionActive {
		question, index, total, prior := session.Current()

		fmt.Printf("\nQuestion %d/%d:\n%s\n\n", index+1, total, question.Text)
		for i, option := range question.Options {
			marker := " "
			if i == prior {
				marker = ">"
			}
			fmt.Printf("%s %s) %s\n", marker, optionLetters[i], option)
		}
		if unanswered := session.UnansweredCount(); unanswered > 0 {
			fmt.Printf("\n(%d unanswered)\n", unanswered)
		}
		fmt.Print("Answer A-D, N next, P previous, S submit, Q quit: ")

		if !scanner.Scan() {
			return
		}
		cmd := strings.ToUpper(strings.TrimSpace(scanner.Text()))

		switch cmd {
		case "A", "B", "C", "D":
			if err := session.Answer(index, strings.Index("ABCD", cmd)); err != nil {
				fmt.Println(err)
			}
		case "N", "":
			session.Advance()
		case "P":
			session.Retreat()
		case "S":
			if submitQuiz(session, scanner) {
				return
			}
		case "Q":
			fmt.Print("Exit the quiz? Your progress will be lost. (y/N): ")
			if scanner.Scan() && strings.EqualFold(strings.TrimSpace(scanner.Text()), "y") {
				session.Reset()
				return
			}
		default:
			fmt.Println("Please enter A-D, N, P, S, or Q.")
		}
	}
}

// submitQuiz finalizes the session, confirming intent first when
// unanswered questions remain.
func submitQuiz(session *quizanything.QuizSession, scanner *bufio.Scanner) bool {
	_, err := session.Submit(false)
	if err == nil {
		return true
	}

	var unanswered *quizanything.UnansweredError
	if !errors.As(err, &unanswered) {
		fmt.Println(err)
		return false
	}

	fmt.Printf("You have %d unanswered questions. Submit anyway? (y/N): ", unanswered.Unanswered)
	if scanner.Scan() && strings.EqualFold(strings.TrimSpace(scanner.Text()), "y") {
		if _, err := session.Submit(true); err != nil {
			fmt.Println(err)
			return false
		}
		return true
	}
	return false
}

func renderReport(report *quizanything.ScoreReport) {
	fmt.Println("\n" + strings.Repeat("─", 50))
	fmt.Printf("🏁 Your Score: %d/%d (%d%%) - %s\n", report.CorrectCount, report.Total, report.Percentage, report.Level)

	fmt.Println("\n🎯 Performance Insights:")
	for _, insight := range report.Insights {
		fmt.Printf("  • %s\n", insight)
	}
	if len(report.StrongAreas) > 0 {
		fmt.Println("\n💪 Strong Areas:")
		for _, area := range report.StrongAreas {
			fmt.Printf("  • %s\n", area)
		}
	}
	if len(report.ImprovementAreas) > 0 {
		fmt.Println("\n📚 Areas for Improvement:")
		for _, area := range report.ImprovementAreas {
			fmt.Printf("  • %s\n", area)
		}
	}

	fmt.Println("\nDetailed Results:")
	for _, r := range report.PerQuestion {
		status := "✗"
		if r.IsCorrect {
			status = "✓"
		}
		fmt.Printf("\n%s Q%d: %s\n", status, r.Number, r.Question)
		fmt.Printf("  Your answer: %s\n", r.UserAnswer)
		if !r.IsCorrect {
			fmt.Printf("  Correct answer: %s\n", r.CorrectAnswer)
		}
		if r.Explanation != "" {
			fmt.Printf("  💡 %s\n", r.Explanation)
		}
	}
}

// terminalNotifier renders pipeline notifications in the terminal.
type terminalNotifier struct{}

func (terminalNotifier) Notify(message string, severity quizanything.Severity) {
	icon := "ℹ️"
	switch severity {
	case quizanything.SeveritySuccess:
		icon = "🎉"
	case quizanything.SeverityWarning:
		icon = "⚠️"
	case quizanything.SeverityError:
		icon = "❌"
	}
	fmt.Printf("%s %s\n", icon, message)
}
