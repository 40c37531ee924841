package quizanything

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LLMLogger keeps a transcript of raw model traffic for one quiz run.
// Malformed responses are diagnosed from here; they are never shown to
// the end user.
type LLMLogger struct {
	file  *os.File
	mu    sync.Mutex
	runID string
}

// NewLLMLogger creates a transcript file for a single generation run.
func NewLLMLogger(runID string, req QuizRequest) (*LLMLogger, error) {
	if err := os.MkdirAll("log", 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	filename := filepath.Join("log", fmt.Sprintf("%s.log", runID))
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	logger := &LLMLogger{
		file:  file,
		runID: runID,
	}

	logger.Logf("=== Quiz Run Log ===\n")
	logger.Logf("Run ID: %s\n", runID)
	logger.Logf("Source: %s\n", req.SourceKind)
	logger.Logf("Language: %s\n", req.Language)
	logger.Logf("Difficulty: %s\n", req.Difficulty)
	if req.Framing != "" {
		logger.Logf("Framing: %s\n", req.Framing)
	}
	logger.Logf("Questions Requested: %d\n", req.QuestionCount)
	logger.Logf("Content Length: %d characters\n", len(req.RawContent))
	logger.Logf("Started: %s\n", time.Now().Format(time.RFC3339))
	logger.Logf("====================\n\n")

	return logger, nil
}

// Logf writes a formatted entry with a timestamp.
func (ll *LLMLogger) Logf(format string, args ...interface{}) {
	ll.mu.Lock()
	defer ll.mu.Unlock()

	timestamp := time.Now().Format("15:04:05.000")
	message := fmt.Sprintf(format, args...)

	fmt.Fprintf(ll.file, "[%s] %s", timestamp, message)
	ll.file.Sync()
}

// LogLLMRequest records the prompt sent for a pipeline stage.
func (ll *LLMLogger) LogLLMRequest(stage, prompt string) {
	ll.Logf("=== LLM REQUEST (%s) ===\n", stage)
	ll.Logf("Prompt:\n%s\n", prompt)
	ll.Logf("=====================\n\n")
}

// LogLLMResponse records the raw response for a pipeline stage.
func (ll *LLMLogger) LogLLMResponse(stage, response string) {
	ll.Logf("=== LLM RESPONSE (%s) ===\n", stage)
	ll.Logf("Response:\n%s\n", response)
	ll.Logf("======================\n\n")
}

// LogVerdict records an auxiliary classification outcome (suitability
// check, language detection) so silent fallbacks stay observable.
func (ll *LLMLogger) LogVerdict(stage, verdict, reason string) {
	ll.Logf("Verdict (%s): %s - %s\n", stage, verdict, reason)
}

// Close finalizes and closes the transcript.
func (ll *LLMLogger) Close() error {
	ll.mu.Lock()
	defer ll.mu.Unlock()

	if ll.file != nil {
		timestamp := time.Now().Format("15:04:05.000")
		fmt.Fprintf(ll.file, "[%s] === Quiz Run Complete ===\n", timestamp)
		fmt.Fprintf(ll.file, "[%s] Completed: %s\n", timestamp, time.Now().Format(time.RFC3339))
		return ll.file.Close()
	}
	return nil
}
