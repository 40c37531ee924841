package quizanything

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// minContentLength is the shortest input worth an API call.
const minContentLength = 3

// meaningfulRatioFloor rejects content where fewer than a fifth of the
// tokens look like real words or technical terms.
const meaningfulRatioFloor = 0.2

// legitimateTerms is the allow-list of acronyms and technical terms that
// would otherwise fail the letter-ratio heuristics.
var legitimateTerms = map[string]bool{}

func init() {
	terms := []string{
		// Financial/Investment
		"EPF", "RIA", "ETF", "IPO", "ROI", "P2P", "KYC", "AML", "ESG", "REIT",
		// Technology
		"API", "SDK", "JSON", "HTML", "CSS", "SQL", "REST", "HTTP", "TCP", "IP", "DNS", "VPN",
		"AI", "ML", "IOT", "AR", "VR", "GPU", "CPU", "RAM", "SSD", "HDD", "USB", "HDMI",
		"AWS", "GCP", "CI", "CD", "DEVOPS", "UI", "UX", "SAAS", "PAAS", "IAAS",
		// Business
		"B2B", "B2C", "CRM", "ERP", "HR", "PR", "SEO", "SEM", "KPI", "CTA", "MVP",
		// Science/Medical
		"DNA", "RNA", "PCR", "MRI", "CT", "HIV", "COVID", "WHO", "FDA", "CDC",
		// Education
		"STEM", "MBA", "PHD", "GPA", "SAT", "ACT", "MOOC", "LMS",
		// Legal/Regulatory
		"GDPR", "HIPAA", "SEC", "FTC", "USPTO", "DMCA", "SOX", "PCI", "DSS",
		// Organizations
		"NATO", "UN", "EU", "ASEAN", "IMF", "WTO", "UNESCO",
	}
	for _, t := range terms {
		legitimateTerms[t] = true
	}
}

// Validator rejects gibberish, empty, or unsuitable input before any
// generation call is spent on it.
type Validator struct {
	client chatCompleter
	model  string
	log    *zap.SugaredLogger
}

// NewValidator creates a validator backed by the OpenAI API. An empty API
// key disables the model-based suitability check; the heuristics still run.
func NewValidator(apiKey string) *Validator {
	v := &Validator{
		model: DefaultFileModel,
		log:   zap.NewNop().Sugar(),
	}
	if apiKey != "" {
		v.client = openai.NewClient(apiKey)
	}
	return v
}

// Validate decides whether content is suitable for quiz generation.
// Topic input additionally goes through a model-based suitability check;
// file uploads skip it, any uploaded document is presumed valid. The model
// check is best-effort: an API failure never blocks the user.
func (v *Validator) Validate(ctx context.Context, content string, kind SourceKind, transcript *LLMLogger) ValidationResult {
	if len(strings.TrimSpace(content)) < minContentLength {
		return ValidationResult{
			Accepted: false,
			Reason:   "Please write a bit more so we can create good questions for you.",
		}
	}

	if MeaningfulWordRatio(content) < meaningfulRatioFloor {
		return ValidationResult{
			Accepted: false,
			Reason:   "This doesn't look like a real topic. Please try writing something we can create questions about.",
		}
	}

	if kind != SourceTopic || v.client == nil {
		return ValidationResult{Accepted: true}
	}
	return v.checkSuitability(ctx, content, transcript)
}

// suitabilityVerdict mirrors the strict JSON object the model must return.
type suitabilityVerdict struct {
	Suitable    bool   `json:"suitable"`
	Reason      string `json:"reason"`
	Suggestions string `json:"suggestions"`
}

func (v *Validator) checkSuitability(ctx context.Context, content string, transcript *LLMLogger) ValidationResult {
	prompt := buildSuitabilityPrompt(content)
	if transcript != nil {
		transcript.LogLLMRequest("Validator", prompt)
	}

	resp, err := v.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: v.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are a content validator for educational quiz generation. Respond only with valid JSON.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens: 300,
		},
	)
	if err != nil {
		// Degrade gracefully: the heuristics already passed.
		v.log.Warnw("suitability check failed, accepting content", "error", err)
		return ValidationResult{Accepted: true}
	}

	if len(resp.Choices) == 0 {
		return ValidationResult{Accepted: true}
	}
	raw := resp.Choices[0].Message.Content
	if transcript != nil {
		transcript.LogLLMResponse("Validator", raw)
	}

	cleaned := stripCodeFences(raw)
	obj, ok := extractJSONObject(cleaned)
	if !ok {
		v.log.Warnw("suitability verdict is not a JSON object, accepting content")
		return ValidationResult{Accepted: true}
	}

	var verdict suitabilityVerdict
	if err := json.Unmarshal([]byte(obj), &verdict); err != nil {
		v.log.Warnw("failed to parse suitability verdict, accepting content", "error", err)
		return ValidationResult{Accepted: true}
	}

	if transcript != nil {
		transcript.LogVerdict("Validator", fmt.Sprintf("suitable=%v", verdict.Suitable), verdict.Reason)
	}

	if !verdict.Suitable {
		reason := fmt.Sprintf("This content is not suitable for creating quiz questions.\n\nReason: %s", verdict.Reason)
		if verdict.Suggestions != "" {
			reason += fmt.Sprintf("\n\nSuggestions: %s", verdict.Suggestions)
		}
		return ValidationResult{Accepted: false, Reason: reason}
	}
	return ValidationResult{Accepted: true}
}

func buildSuitabilityPrompt(content string) string {
	sample := content
	if len(sample) > 1000 {
		sample = sample[:1000]
	}

	var sb strings.Builder
	sb.WriteString("Analyze the following content and determine if it's suitable for creating educational quiz questions.\n\n")
	sb.WriteString(fmt.Sprintf("Content: %q\n\n", sample))
	sb.WriteString("Respond with only a JSON object in this format:\n")
	sb.WriteString("{\n  \"suitable\": true/false,\n  \"reason\": \"brief explanation\",\n  \"suggestions\": \"suggestions if not suitable\"\n}\n\n")
	sb.WriteString("Content is suitable if it contains educational, factual, or informational material, including:\n")
	sb.WriteString("- Academic topics and subjects\n")
	sb.WriteString("- Technical terms, acronyms, and professional frameworks (e.g., \"EPF RIA framework\", \"API development\", \"GDPR compliance\")\n")
	sb.WriteString("- Business and financial concepts\n")
	sb.WriteString("- Scientific and medical terminology\n")
	sb.WriteString("- Technology and programming topics\n")
	sb.WriteString("- Current events and policy discussions\n")
	sb.WriteString("- Professional certifications and standards\n\n")
	sb.WriteString("Content is NOT suitable if it's:\n")
	sb.WriteString("- Just random text, symbols, or truly meaningless gibberish (not legitimate technical terms)\n")
	sb.WriteString("- Personal information like contact lists or addresses\n")
	sb.WriteString("- Code/data dumps without any educational context\n")
	sb.WriteString("- Pure creative writing without factual content\n")
	sb.WriteString("- Simple lists without educational value\n\n")
	sb.WriteString("IMPORTANT: Be accepting of technical terms, acronyms, and specialized vocabulary that may appear unusual but are legitimate educational topics.")
	return sb.String()
}

// MeaningfulWordRatio is the fraction of whitespace-delimited tokens that
// look like real linguistic or technical content. Content in non-Latin
// scripts is inherently meaningful and short-circuits to 1.0.
func MeaningfulWordRatio(content string) float64 {
	if containsNonLatinScript(content) {
		return 1.0
	}

	words := strings.Fields(content)
	if len(words) == 0 {
		return 0
	}

	meaningful := 0
	for _, word := range words {
		if isMeaningfulWord(word) {
			meaningful++
		}
	}
	return float64(meaningful) / float64(len(words))
}

// keyboardRows catch mash sequences like "asdf" or "qwer" that are pure
// letters yet carry no meaning.
var keyboardRows = []string{"qwertyuiop", "asdfghjkl", "zxcvbnm", "1234567890"}

func isKeyboardMash(token string) bool {
	if len(token) < 3 {
		return false
	}
	for _, row := range keyboardRows {
		if strings.Contains(row, token) {
			return true
		}
	}
	return false
}

func isMeaningfulWord(word string) bool {
	if legitimateTerms[strings.ToUpper(word)] {
		return true
	}

	// Any non-ASCII letter marks a real word in another script.
	for _, r := range word {
		if r > 127 && unicode.IsLetter(r) {
			return true
		}
	}

	// Strip punctuation, then judge the letter/digit makeup.
	var clean []rune
	for _, r := range word {
		if r == '_' || (r >= '0' && r <= '9') ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			clean = append(clean, r)
		}
	}
	if len(clean) <= 1 {
		return false
	}
	if isKeyboardMash(strings.ToLower(string(clean))) {
		return false
	}

	letters, digits := 0, 0
	for _, r := range clean {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			letters++
		case r >= '0' && r <= '9':
			digits++
		}
	}

	total := len(clean)
	if float64(letters)/float64(total) > 0.6 {
		return true
	}
	if float64(letters+digits)/float64(total) > 0.8 {
		return true
	}
	// Short all-digit tokens: years, quantities.
	if digits == total && total >= 2 && total <= 6 {
		return true
	}
	return false
}

// containsNonLatinScript reports whether content has any CJK, Arabic,
// Hangul, Hiragana, or Katakana codepoint.
func containsNonLatinScript(content string) bool {
	for _, r := range content {
		switch {
		case r >= 0x4E00 && r <= 0x9FFF: // CJK ideographs
			return true
		case r >= 0x3040 && r <= 0x30FF: // Hiragana + Katakana
			return true
		case r >= 0x0600 && r <= 0x06FF: // Arabic
			return true
		case r >= 0xAC00 && r <= 0xD7AF: // Hangul
			return true
		}
	}
	return false
}
