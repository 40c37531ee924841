package quizanything

import (
	"strings"
	"testing"
)

func TestBuildPromptTopicDefaultSearches(t *testing.T) {
	prompt := BuildPrompt(QuizRequest{
		RawContent:    "quantum computing",
		SourceKind:    SourceTopic,
		Language:      "en",
		QuestionCount: 10,
	})

	if !strings.Contains(prompt, `Search for the latest information about "quantum computing"`) {
		t.Fatalf("missing search block:\n%s", prompt)
	}
	if !strings.Contains(prompt, "generate exactly 10 multiple choice questions") {
		t.Fatalf("missing exact count:\n%s", prompt)
	}
	if !strings.Contains(prompt, "SEARCH INSTRUCTIONS:") {
		t.Fatalf("missing search instructions:\n%s", prompt)
	}
}

func TestBuildPromptTopicWithFramingSkipsSearch(t *testing.T) {
	prompt := BuildPrompt(QuizRequest{
		RawContent:    "Python",
		SourceKind:    SourceTopic,
		Language:      "en",
		Difficulty:    DifficultyEasy,
		Framing:       ClarifySkills,
		QuestionCount: 5,
	})

	if strings.Contains(prompt, "Search for the latest information") {
		t.Fatalf("framed topic prompt still searches:\n%s", prompt)
	}
	if !strings.Contains(prompt, `Generate exactly 5 multiple choice questions about "Python"`) {
		t.Fatalf("missing exact count and topic:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Focus on practical skills") {
		t.Fatalf("missing skills framing:\n%s", prompt)
	}
	if !strings.Contains(prompt, "DIFFICULTY: Easy.") {
		t.Fatalf("missing easy difficulty rubric:\n%s", prompt)
	}
}

func TestBuildPromptFileDefaultForbidsOutsideInformation(t *testing.T) {
	prompt := BuildPrompt(QuizRequest{
		RawContent:    "The mitochondria is the powerhouse of the cell.",
		SourceKind:    SourceFile,
		Language:      "en",
		QuestionCount: 3,
	})

	if !strings.Contains(prompt, "Do not import outside information") {
		t.Fatalf("file prompt missing containment clause:\n%s", prompt)
	}
	if strings.Contains(prompt, "Search for the latest information") {
		t.Fatalf("file prompt must never search:\n%s", prompt)
	}
	if !strings.Contains(prompt, "mitochondria") {
		t.Fatalf("file prompt missing document content:\n%s", prompt)
	}
}

func TestBuildPromptFileWithFramingStaysGrounded(t *testing.T) {
	prompt := BuildPrompt(QuizRequest{
		RawContent:    "func main() { fmt.Println(42) }",
		SourceKind:    SourceFile,
		Language:      "en",
		Framing:       ClarifyCode,
		QuestionCount: 5,
	})

	if !strings.Contains(prompt, "Focus on the code") {
		t.Fatalf("missing code framing:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Base every question on information present in the document.") {
		t.Fatalf("framed file prompt lost document grounding:\n%s", prompt)
	}
}

func TestBuildPromptLanguageInstruction(t *testing.T) {
	prompt := BuildPrompt(QuizRequest{
		RawContent:    "historia de España",
		SourceKind:    SourceTopic,
		Language:      "es",
		QuestionCount: 5,
	})
	if !strings.Contains(prompt, "Generate all questions and answers in Spanish.") {
		t.Fatalf("missing Spanish instruction:\n%s", prompt)
	}
	if !strings.Contains(prompt, "the question text in Spanish") {
		t.Fatalf("field contract not localized:\n%s", prompt)
	}

	english := BuildPrompt(QuizRequest{
		RawContent:    "history",
		SourceKind:    SourceTopic,
		Language:      "en",
		QuestionCount: 5,
	})
	if strings.Contains(english, "Generate all questions and answers in") {
		t.Fatalf("English prompt carries a language instruction:\n%s", english)
	}
}

func TestBuildPromptAlwaysHasDiversityAndContract(t *testing.T) {
	requests := []QuizRequest{
		{RawContent: "jazz", SourceKind: SourceTopic, Language: "en", QuestionCount: 3},
		{RawContent: "document text", SourceKind: SourceFile, Language: "fr", Framing: ClarifyDeep, QuestionCount: 20},
	}
	for _, req := range requests {
		prompt := BuildPrompt(req)
		if !strings.Contains(prompt, "QUESTION DIVERSITY & UNIQUENESS REQUIREMENTS:") {
			t.Errorf("missing diversity clause for %v source", req.SourceKind)
		}
		if !strings.Contains(prompt, "Respond ONLY with a valid JSON array") {
			t.Errorf("missing JSON contract for %v source", req.SourceKind)
		}
		if !strings.Contains(prompt, "correct: number (index 0-3") {
			t.Errorf("missing correct-field contract for %v source", req.SourceKind)
		}
	}
}

func TestBuildPromptDefaultsWhenUnset(t *testing.T) {
	prompt := BuildPrompt(QuizRequest{
		RawContent:    "volcanoes",
		SourceKind:    SourceTopic,
		QuestionCount: 5,
	})
	if !strings.Contains(prompt, "DIFFICULTY: Medium.") {
		t.Fatalf("empty difficulty did not default to medium:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Search for the latest information") {
		t.Fatalf("empty framing did not default to general:\n%s", prompt)
	}
}

func TestSampleDocumentShortContentPassesThrough(t *testing.T) {
	content := strings.Repeat("word ", 100)
	if got := SampleDocument(content); got != content {
		t.Fatal("short document was modified")
	}
}

func TestSampleDocumentLongContentIsExcerpted(t *testing.T) {
	header := strings.Repeat("H", 200)
	body := strings.Repeat("b", 5000)
	tail := strings.Repeat("z", 3000)
	content := header + body + tail

	got := SampleDocument(content)

	if !strings.Contains(got, sampleMarker) {
		t.Fatal("long document sample has no continuation marker")
	}
	if strings.Contains(got, "H") {
		t.Fatal("sample did not skip the header region")
	}
	if !strings.HasSuffix(got, strings.Repeat("z", 100)) {
		t.Fatal("sample missing the document tail")
	}
	if runes := len([]rune(got)); runes > 3*sampleChunk+2*len(sampleMarker) {
		t.Fatalf("sample too long: %d runes", runes)
	}
}
