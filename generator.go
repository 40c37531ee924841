package quizanything

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
)

// chatCompleter is the slice of the OpenAI client the pipeline uses.
// Tests substitute an in-memory fake.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

const generationMaxTokens = 2000

const generationSystemRole = "You are an advanced quiz generator with search capabilities. Search for the latest information when creating questions to ensure accuracy and currentness. You must respond ONLY with valid JSON arrays containing question objects. No explanations, no markdown formatting, no additional text."

// questionArraySchema is the structural contract the model's response
// must satisfy. Semantic uniqueness is a prompt-side requirement and is
// deliberately not checked here.
const questionArraySchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "question": {"type": "string", "minLength": 1},
      "options": {"type": "array", "items": {"type": "string"}, "minItems": 4, "maxItems": 4},
      "correct": {"type": "integer", "minimum": 0, "maximum": 3},
      "explanation": {"type": "string"}
    },
    "required": ["question", "options", "correct"]
  }
}`

var questionSchema = gojsonschema.NewStringLoader(questionArraySchema)

// GenerationClient calls the model API and turns its response into a
// validated question set.
type GenerationClient struct {
	client     chatCompleter
	topicModel string
	fileModel  string
	log        *zap.SugaredLogger
}

// NewGenerationClient creates a generation client with an OpenAI client.
func NewGenerationClient(apiKey string) *GenerationClient {
	return &GenerationClient{
		client:     openai.NewClient(apiKey),
		topicModel: DefaultTopicModel,
		fileModel:  DefaultFileModel,
		log:        zap.NewNop().Sugar(),
	}
}

// Generate builds the prompt for req, calls the model, and returns the
// parsed, validated question set. Either the whole batch is accepted or
// none is. The model over-producing is truncated to the requested count;
// under-producing is accepted as-is and logged.
func (gc *GenerationClient) Generate(ctx context.Context, req QuizRequest, transcript *LLMLogger) ([]Question, error) {
	prompt := BuildPrompt(req)
	if transcript != nil {
		transcript.LogLLMRequest("Generator", prompt)
	}

	model := gc.topicModel
	if req.SourceKind == SourceFile {
		model = gc.fileModel
	}

	resp, err := gc.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: generationSystemRole,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens: generationMaxTokens,
		},
	)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, &APIError{Status: apiErr.HTTPStatusCode, Message: apiErr.Message}
		}
		return nil, &APIError{Message: err.Error()}
	}

	if len(resp.Choices) == 0 {
		return nil, &ParseError{Cause: errors.New("no choices in response")}
	}
	raw := resp.Choices[0].Message.Content
	if transcript != nil {
		transcript.LogLLMResponse("Generator", raw)
	}

	questions, err := ParseQuestions(raw, req.QuestionCount)
	if err != nil {
		return nil, err
	}
	if len(questions) < req.QuestionCount {
		gc.log.Infow("model produced fewer questions than requested",
			"requested", req.QuestionCount, "received", len(questions))
	}
	return questions, nil
}

// wireQuestion mirrors the question objects the prompt demands.
type wireQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
	Explanation string   `json:"explanation"`
}

// ParseQuestions turns a raw model response into questions: strips
// markdown fences, extracts the first top-level JSON array by bracket
// matching, parses it, and validates every element. Atomic: a single
// invalid element fails the whole batch.
func ParseQuestions(raw string, want int) ([]Question, error) {
	cleaned := stripCodeFences(strings.TrimSpace(raw))

	arrayText, ok := extractJSONArray(cleaned)
	if !ok {
		return nil, &ParseError{Cause: errors.New("no JSON array in response")}
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(arrayText), &elements); err != nil {
		return nil, &ParseError{Cause: err}
	}

	result, err := gojsonschema.Validate(questionSchema, gojsonschema.NewStringLoader(arrayText))
	if err != nil {
		return nil, &ParseError{Cause: err}
	}
	if !result.Valid() {
		desc := result.Errors()[0]
		return nil, &SchemaError{Index: schemaErrorIndex(desc.Field()), Reason: desc.Description()}
	}

	questions := make([]Question, 0, len(elements))
	for i, element := range elements {
		var wq wireQuestion
		if err := json.Unmarshal(element, &wq); err != nil {
			return nil, &ParseError{Cause: err}
		}
		if strings.TrimSpace(wq.Question) == "" {
			return nil, &SchemaError{Index: i, Reason: "question text is empty"}
		}
		questions = append(questions, Question{
			Text:          wq.Question,
			Options:       wq.Options,
			CorrectAnswer: wq.Correct,
			Explanation:   wq.Explanation,
		})
	}

	// Truncate, never pad. A short batch is the caller's to live with.
	if len(questions) > want {
		questions = questions[:want]
	}
	return questions, nil
}

// schemaErrorIndex pulls the array index out of a schema error field like
// "3.options". Returns -1 when the field does not start with an index.
func schemaErrorIndex(field string) int {
	head, _, _ := strings.Cut(field, ".")
	if i, err := strconv.Atoi(head); err == nil {
		return i
	}
	return -1
}

// stripCodeFences removes markdown code-fence wrappers the model adds
// despite being told not to.
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	return strings.ReplaceAll(s, "```", "")
}

// extractJSONArray returns the first top-level JSON array in s, found by
// bracket matching that respects string literals.
func extractJSONArray(s string) (string, bool) {
	return extractBalanced(s, '[', ']')
}

// extractJSONObject returns the first top-level JSON object in s.
func extractJSONObject(s string) (string, bool) {
	return extractBalanced(s, '{', '}')
}

func extractBalanced(s string, open, close byte) (string, bool) {
	start := strings.IndexByte(s, open)
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
