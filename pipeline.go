package quizanything

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
)

// Severity classifies a user notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notifier is the outbound boundary to the UI collaborator. The pipeline
// pushes user-facing messages through it and never renders anything
// itself.
type Notifier interface {
	Notify(message string, severity Severity)
}

type nopNotifier struct{}

func (nopNotifier) Notify(string, Severity) {}

// Input is everything the UI collected from the user for one quiz.
type Input struct {
	Topic    string // topic mode: free-text subject
	FileName string // file mode: uploaded file name (for extension dispatch)
	FileData []byte // file mode: raw file payload

	Difficulty    Difficulty
	QuestionCount int

	// Framing is the clarification the user chose after an earlier
	// CreateQuiz call returned options. SkipClarification proceeds with
	// the default framing when the user declined to pick one.
	Framing           ClarificationType
	SkipClarification bool
}

// Result is the outcome of CreateQuiz: either a loaded session, or a set
// of clarification options the UI must present before calling again.
type Result struct {
	Session        *QuizSession
	Clarifications []ClarificationOption
}

// Pipeline wires the intake stages together: extraction, validation,
// language detection, ambiguity resolution, prompt building, generation.
// At most one generation runs at a time; concurrent calls fail fast with
// ErrGenerationInFlight so the UI can keep its trigger disabled.
type Pipeline struct {
	validator *Validator
	detector  *LanguageDetector
	generator *GenerationClient
	notifier  Notifier
	log       *zap.SugaredLogger

	transcripts bool
	busy        atomic.Bool
}

// NewPipeline creates a pipeline backed by the OpenAI API.
func NewPipeline(apiKey string) *Pipeline {
	return &Pipeline{
		validator: NewValidator(apiKey),
		detector:  NewLanguageDetector(apiKey),
		generator: NewGenerationClient(apiKey),
		notifier:  nopNotifier{},
		log:       zap.NewNop().Sugar(),
	}
}

// SetLogger attaches a logger to the pipeline and all its stages.
func (p *Pipeline) SetLogger(log *zap.SugaredLogger) {
	p.log = log
	p.validator.log = log
	p.detector.log = log
	p.generator.log = log
}

// SetNotifier attaches the UI notification boundary.
func (p *Pipeline) SetNotifier(n Notifier) {
	if n != nil {
		p.notifier = n
	}
}

// EnableTranscripts turns on per-run transcript files of raw LLM traffic
// under ./log.
func (p *Pipeline) EnableTranscripts(on bool) {
	p.transcripts = on
}

// SetModels overrides the default model names for topic-mode and
// file-mode generation. The file model is also used for the auxiliary
// validation and language-detection calls.
func (p *Pipeline) SetModels(topicModel, fileModel string) {
	if topicModel != "" {
		p.generator.topicModel = topicModel
	}
	if fileModel != "" {
		p.generator.fileModel = fileModel
		p.validator.model = fileModel
		p.detector.model = fileModel
	}
}

// CreateQuiz runs the full intake pipeline. It returns clarification
// options when the input is ambiguous and no framing was chosen yet;
// otherwise it generates the quiz and returns a freshly loaded session.
// No partial quiz is ever returned: generation yields a fully validated
// question set or no session at all.
func (p *Pipeline) CreateQuiz(ctx context.Context, in Input) (*Result, error) {
	if !p.busy.CompareAndSwap(false, true) {
		return nil, ErrGenerationInFlight
	}
	defer p.busy.Store(false)

	content, kind, err := p.resolveContent(in)
	if err != nil {
		p.notifier.Notify(err.Error(), SeverityError)
		return nil, err
	}

	req := QuizRequest{
		RawContent:    content,
		SourceKind:    kind,
		Difficulty:    in.Difficulty,
		Framing:       in.Framing,
		QuestionCount: in.QuestionCount,
	}
	if req.Difficulty == "" {
		req.Difficulty = DifficultyMedium
	}
	if req.QuestionCount <= 0 {
		req.QuestionCount = 10
	}

	var transcript *LLMLogger
	if p.transcripts {
		transcript, err = NewLLMLogger(generateRunID(), req)
		if err != nil {
			p.log.Warnw("failed to create transcript log", "error", err)
			transcript = nil
		} else {
			defer transcript.Close()
		}
	}

	verdict := p.validator.Validate(ctx, content, kind, transcript)
	if !verdict.Accepted {
		p.notifier.Notify(verdict.Reason, SeverityError)
		return nil, &ValidationRejectedError{Reason: verdict.Reason}
	}

	req.Language = p.detector.Detect(ctx, content)
	p.log.Infow("content accepted", "source", kind, "language", req.Language, "length", len(content))
	if transcript != nil {
		transcript.Logf("Detected language: %s\n", req.Language)
	}

	if in.Framing == "" && !in.SkipClarification {
		var options []ClarificationOption
		if kind == SourceTopic {
			options = DetectTopicAmbiguity(content)
		} else {
			options = DetectDocumentAmbiguity(content)
		}
		if len(options) > 0 {
			return &Result{Clarifications: options}, nil
		}
	}

	questions, err := p.generator.Generate(ctx, req, transcript)
	if err != nil {
		p.notifyGenerationFailure(err)
		return nil, err
	}
	if len(questions) == 0 {
		err := &ParseError{Cause: errors.New("model returned no questions")}
		p.notifyGenerationFailure(err)
		return nil, err
	}

	session := NewQuizSession()
	if err := session.Load(questions); err != nil {
		return nil, err
	}

	if len(questions) < req.QuestionCount {
		p.notifier.Notify(fmt.Sprintf("Your quiz has %d questions; the model returned fewer than the %d requested.",
			len(questions), req.QuestionCount), SeverityWarning)
	}
	if kind == SourceTopic {
		p.notifier.Notify(fmt.Sprintf("Your quiz is ready! %d questions based on the latest information.", len(questions)), SeveritySuccess)
	} else {
		p.notifier.Notify(fmt.Sprintf("Quiz created from your document! %d questions ready.", len(questions)), SeveritySuccess)
	}
	return &Result{Session: session}, nil
}

// resolveContent turns the input into quiz content: the trimmed topic
// text, or the text extracted from the uploaded file.
func (p *Pipeline) resolveContent(in Input) (string, SourceKind, error) {
	if in.FileName != "" || len(in.FileData) > 0 {
		text, err := ExtractFile(in.FileName, in.FileData)
		if err != nil {
			return "", SourceFile, err
		}
		return text, SourceFile, nil
	}

	topic := strings.TrimSpace(in.Topic)
	if topic == "" {
		return "", SourceTopic, &InputError{Reason: "Please tell us what you'd like to be quizzed on."}
	}
	return topic, SourceTopic, nil
}

// notifyGenerationFailure maps a generation error to the message the user
// sees. API failures are surfaced verbatim so the user can judge whether
// to retry; malformed model output gets a generic message while the raw
// response stays in the transcript for diagnostics.
func (p *Pipeline) notifyGenerationFailure(err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		p.notifier.Notify(apiErr.Error(), SeverityError)
		return
	}
	p.log.Errorw("quiz generation failed", "error", err)
	p.notifier.Notify("Sorry, there was a problem creating your quiz. Please try again.", SeverityError)
}

func generateRunID() string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, 12)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
