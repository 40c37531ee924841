package quizanything

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLLMLoggerTranscript(t *testing.T) {
	dir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })

	logger, err := NewLLMLogger("testrun01", QuizRequest{
		RawContent:    "volcanoes",
		SourceKind:    SourceTopic,
		Language:      "en",
		Difficulty:    DifficultyMedium,
		QuestionCount: 5,
	})
	if err != nil {
		t.Fatalf("NewLLMLogger: %v", err)
	}

	logger.LogLLMRequest("Generator", "the prompt text")
	logger.LogLLMResponse("Generator", `[{"question":"q"}]`)
	logger.LogVerdict("Validator", "suitable=true", "looks fine")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join("log", "testrun01.log"))
	if err != nil {
		t.Fatalf("transcript not written: %v", err)
	}
	transcript := string(data)

	for _, want := range []string{
		"Run ID: testrun01",
		"LLM REQUEST (Generator)",
		"the prompt text",
		"LLM RESPONSE (Generator)",
		"Verdict (Validator): suitable=true - looks fine",
		"Quiz Run Complete",
	} {
		if !strings.Contains(transcript, want) {
			t.Errorf("transcript missing %q", want)
		}
	}
}

func TestGenerateRunIDShape(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := generateRunID()
		if len(id) != 12 {
			t.Fatalf("run ID %q has length %d, want 12", id, len(id))
		}
		for _, r := range id {
			if !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') {
				t.Fatalf("run ID %q has unexpected character %q", id, r)
			}
		}
		seen[id] = true
	}
	if len(seen) < 2 {
		t.Fatal("run IDs never vary")
	}
}
