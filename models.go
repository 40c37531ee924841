package quizanything

// Question represents a single multiple choice question.
// Every question carries exactly 4 options; CorrectAnswer indexes into them.
type Question struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"` // 0-based index
	Explanation   string   `json:"explanation,omitempty"`
}

// SourceKind says where the quiz content came from.
type SourceKind string

const (
	SourceTopic SourceKind = "topic" // free-text subject typed by the user
	SourceFile  SourceKind = "file"  // text extracted from an uploaded document
)

// Difficulty selects the cognitive-demand rubric used in the prompt.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ClarificationType tags the pedagogical angle the generated questions
// should emphasize. The prompt builder keeps an exhaustive instruction
// table over these tags; adding a tag without an instruction is a bug.
type ClarificationType string

const (
	ClarifyGeneral     ClarificationType = "general"
	ClarifySkills      ClarificationType = "skills"
	ClarifyKnowledge   ClarificationType = "knowledge"
	ClarifyApplication ClarificationType = "application"
	ClarifyCulture     ClarificationType = "culture"
	ClarifyLanguage    ClarificationType = "language"
	ClarifyTechnique   ClarificationType = "technique"
	ClarifyDeep        ClarificationType = "deep"
	ClarifyCode        ClarificationType = "code"
	ClarifyTechnical   ClarificationType = "technical"
	ClarifyBusiness    ClarificationType = "business"
	ClarifyAnalytical  ClarificationType = "analytical"
)

// ClarificationOption is one disambiguation choice offered to the user.
// The chosen Framing is threaded opaquely through to the prompt builder.
type ClarificationOption struct {
	Framing     ClarificationType `json:"framing"`
	Label       string            `json:"label"`
	Description string            `json:"description"`
}

// QuizRequest drives a single generation call. Immutable once built;
// retaking a quiz constructs a brand-new request.
type QuizRequest struct {
	RawContent    string            `json:"raw_content"`
	SourceKind    SourceKind        `json:"source_kind"`
	Language      string            `json:"language"` // ISO 639-1 code
	Difficulty    Difficulty        `json:"difficulty"`
	Framing       ClarificationType `json:"framing,omitempty"` // empty when none chosen
	QuestionCount int               `json:"question_count"`
}

// ValidationResult is the verdict on whether content is worth an API call.
type ValidationResult struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
}

// QuestionResult records how a single question was answered.
type QuestionResult struct {
	Number        int    `json:"number"` // 1-based question number
	Question      string `json:"question"`
	UserChoice    int    `json:"user_choice"` // Unanswered when skipped
	CorrectChoice int    `json:"correct_choice"`
	UserAnswer    string `json:"user_answer"` // option text, "Not answered" when skipped
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation,omitempty"`
}

// ScoreReport is the finalized outcome of a completed quiz.
type ScoreReport struct {
	CorrectCount     int              `json:"correct_count"`
	Total            int              `json:"total"`
	Percentage       int              `json:"percentage"`
	Level            PerformanceLevel `json:"level"`
	PerQuestion      []QuestionResult `json:"per_question"`
	Insights         []string         `json:"insights"`
	StrongAreas      []string         `json:"strong_areas,omitempty"`
	ImprovementAreas []string         `json:"improvement_areas,omitempty"`
}

// PerformanceLevel is the qualitative classification of a score.
type PerformanceLevel string

const (
	LevelExcellent        PerformanceLevel = "Excellent"
	LevelGood             PerformanceLevel = "Good"
	LevelFair             PerformanceLevel = "Fair"
	LevelNeedsImprovement PerformanceLevel = "Needs Improvement"
)
