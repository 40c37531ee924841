package quizanything

import (
	"fmt"
	"strings"
	"time"
)

// languageNames maps ISO 639-1 codes to the names used in prompts.
var languageNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"ru": "Russian",
	"nl": "Dutch",
	"zh": "Chinese",
	"ja": "Japanese",
	"ar": "Arabic",
	"ko": "Korean",
}

// difficultyInstructions is the fixed three-tier cognitive-demand rubric.
var difficultyInstructions = map[Difficulty]string{
	DifficultyEasy:   "DIFFICULTY: Easy. Test recall and definitions only. Each question should be answerable by someone who has read an introduction to the topic.",
	DifficultyMedium: "DIFFICULTY: Medium. Test application and comparison. Questions should require understanding concepts well enough to apply them or tell them apart.",
	DifficultyHard:   "DIFFICULTY: Hard. Test multi-step synthesis and evaluation. Questions should require combining several ideas or judging between plausible alternatives.",
}

// framingInstructions maps every ClarificationType to its prompt block.
// ClarifyGeneral is the default: topic mode adds search instructions,
// file mode forbids outside information (see BuildPrompt).
var framingInstructions = map[ClarificationType]string{
	ClarifyGeneral:     "Focus on general knowledge of the topic, favoring current and topical information.",
	ClarifySkills:      "Focus on practical skills: what a practitioner would actually do, write, or decide. Prefer questions about doing over questions about naming.",
	ClarifyKnowledge:   "Focus on concepts and theory: definitions, principles, history, and how things work. Avoid hands-on or procedural questions.",
	ClarifyApplication: "Focus on application and practice: realistic scenarios where the topic's ideas must be applied to get a correct outcome.",
	ClarifyCulture:     "Focus on culture and context: people, places, customs, and society connected to the topic rather than technical detail.",
	ClarifyLanguage:    "Focus on the language itself: grammar, vocabulary, common phrases, and correct usage.",
	ClarifyTechnique:   "Focus on technique: methods, form, craft, and the mechanics of doing it well.",
	ClarifyDeep:        "Focus on detailed knowledge: specifics, edge cases, and finer points that go beyond an overview.",
	ClarifyCode:        "Focus on the code: what given constructs do, what output to expect, and which implementation is correct.",
	ClarifyTechnical:   "Focus on technical substance: mechanisms, methods, measurements, and precise terminology.",
	ClarifyBusiness:    "Focus on the business angle: figures, decisions, strategy, and commercial consequences.",
	ClarifyAnalytical:  "Focus on analysis: interpreting data, comparing alternatives, and reasoning about causes and consequences.",
}

// diversityClause is always appended. It is a hard requirement on the
// model's output that the caller cannot verify, so downstream validation
// checks structure only.
const diversityClause = `QUESTION DIVERSITY & UNIQUENESS REQUIREMENTS:
- Every question must be completely unique and cover a different aspect of the content
- Avoid questions that test the same fact, concept, or information in different ways
- Make sure no two questions have overlapping, similar, or related correct answers
- Distribute questions across different subtopics, sections, or aspects when possible
- Vary question types: include factual recall, conceptual understanding, application, comparison, and analysis questions
- Avoid repetitive question patterns, structures, or phrasings
- Each question must focus on a distinctly different piece of information or concept`

// Document sampling bounds (in runes). Long documents are represented by
// three excerpts instead of a raw prefix so the model sees the whole span.
const (
	sampleCeiling    = 6000
	sampleChunk      = 2000
	sampleHeaderSkip = 200
	sampleMarker     = "\n[...document continues...]\n"
)

// BuildPrompt assembles the generation prompt for one request. Pure: the
// same request always yields the same prompt for a given day.
func BuildPrompt(req QuizRequest) string {
	framing := req.Framing
	if framing == "" {
		framing = ClarifyGeneral
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = DifficultyMedium
	}
	langName, ok := languageNames[req.Language]
	if !ok {
		langName = "English"
	}

	var sb strings.Builder

	if req.SourceKind == SourceTopic {
		if framing == ClarifyGeneral {
			now := time.Now()
			fmt.Fprintf(&sb, "Search for the latest information about %q and generate exactly %d multiple choice questions based on current, up-to-date information as of %s.\n\n",
				req.RawContent, req.QuestionCount, now.Format("January 2, 2006"))
			sb.WriteString("SEARCH INSTRUCTIONS:\n")
			fmt.Fprintf(&sb, "- Look up recent developments, current statistics, latest research, and up-to-date facts about %q\n", req.RawContent)
			sb.WriteString("- Include questions about recent events, current leaders, latest discoveries, or recent changes in this field\n")
			fmt.Fprintf(&sb, "- Ensure all factual information is accurate as of %d\n", now.Year())
			sb.WriteString("- Prioritize information from the last 2-3 years when relevant\n\n")
		} else {
			fmt.Fprintf(&sb, "Generate exactly %d multiple choice questions about %q.\n\n", req.QuestionCount, req.RawContent)
			sb.WriteString("FOCUS:\n")
			sb.WriteString(framingInstructions[framing])
			sb.WriteString("\n\n")
		}
	} else {
		fmt.Fprintf(&sb, "Generate exactly %d multiple choice questions based on this document content:\n\n%q\n\n",
			req.QuestionCount, SampleDocument(req.RawContent))
		sb.WriteString("FOCUS:\n")
		if framing == ClarifyGeneral {
			sb.WriteString("Base every question strictly on information present in the document. Do not import outside information, current events, or facts the document does not state.")
		} else {
			sb.WriteString(framingInstructions[framing])
			sb.WriteString(" Base every question on information present in the document.")
		}
		sb.WriteString("\n\n")
	}

	sb.WriteString(difficultyInstructions[difficulty])
	sb.WriteString("\n\n")
	sb.WriteString(diversityClause)
	sb.WriteString("\n\n")

	if req.Language != "" && req.Language != "en" {
		fmt.Fprintf(&sb, "Generate all questions and answers in %s.\n\n", langName)
	}

	sb.WriteString("IMPORTANT: Respond ONLY with a valid JSON array. No other text before or after. Each question object must have exactly these fields:\n")
	fmt.Fprintf(&sb, "- question: string (the question text in %s)\n", langName)
	fmt.Fprintf(&sb, "- options: array of exactly 4 strings (the answer choices in %s)\n", langName)
	sb.WriteString("- correct: number (index 0-3 of the correct option)\n")
	sb.WriteString("- explanation: string (brief explanation of why the correct answer is right)\n\n")
	sb.WriteString("Example format:\n")
	sb.WriteString(`[
  {
    "question": "What is the main concept discussed?",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correct": 1,
    "explanation": "Option B is correct because..."
  }
]`)

	return sb.String()
}

// SampleDocument bounds long document content for the prompt: three
// excerpts near the start (skipping a header), around the 40% mark, and
// near the end, joined with an explicit continuation marker.
func SampleDocument(content string) string {
	runes := []rune(content)
	if len(runes) <= sampleCeiling {
		return content
	}

	start := sampleHeaderSkip
	if start+sampleChunk > len(runes) {
		start = 0
	}
	mid := int(float64(len(runes)) * 0.4)
	if mid+sampleChunk > len(runes) {
		mid = len(runes) - sampleChunk
	}

	parts := []string{
		string(runes[start : start+sampleChunk]),
		string(runes[mid : mid+sampleChunk]),
		string(runes[len(runes)-sampleChunk:]),
	}
	return strings.Join(parts, sampleMarker)
}
