package quizanything

import (
	"context"
	"regexp"
	"strings"
	"sync"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// cachePrefixLen keys the detection cache on a short content prefix so
// retakes of the same content skip repeat detection.
const cachePrefixLen = 100

// patternMatchThreshold is the minimum stop-word hit count a language
// needs before its pattern win is trusted over the English default.
const patternMatchThreshold = 5

// supportedLanguages is the allow-list of ISO 639-1 codes the pipeline
// trusts, including from the model fallback.
var supportedLanguages = map[string]bool{
	"en": true, "es": true, "fr": true, "de": true, "it": true, "pt": true,
	"ru": true, "nl": true, "zh": true, "ja": true, "ar": true, "ko": true,
}

// scriptRule maps a Unicode range to a language code. Order is the fixed
// priority: the first range present anywhere in the content wins.
type scriptRule struct {
	code   string
	lo, hi rune
}

var scriptRules = []scriptRule{
	{"zh", 0x4E00, 0x9FFF}, // CJK ideographs
	{"ja", 0x3040, 0x30FF}, // Hiragana + Katakana
	{"ar", 0x0600, 0x06FF}, // Arabic
	{"ko", 0xAC00, 0xD7AF}, // Hangul
	{"ru", 0x0400, 0x04FF}, // Cyrillic
}

// languagePattern is one weighted stop-word rule. Patterns are evaluated
// in this fixed order; the highest match count wins.
type languagePattern struct {
	code string
	re   *regexp.Regexp
}

var languagePatterns = []languagePattern{
	{"es", regexp.MustCompile(`(?i)\b(el|la|los|las|de|en|un|una|con|por|para|que|se|es|son|muy|pero|como|cuando|donde|porque|si|no|también|hasta|desde)\b`)},
	{"fr", regexp.MustCompile(`(?i)\b(le|la|les|de|du|des|un|une|et|ou|est|sont|avec|pour|dans|sur|par|ce|cette|ces|que|qui|se|ne|pas|plus|mais|comme|quand|parce|si|oui|non|aussi|depuis)\b`)},
	{"de", regexp.MustCompile(`(?i)\b(der|die|das|den|dem|des|ein|eine|und|oder|ist|sind|mit|in|auf|von|zu|bei|nach|unter|zwischen|dass|wie|wenn|wo|weil|ob|ja|nein|auch|bis|seit)\b`)},
	{"it", regexp.MustCompile(`(?i)\b(il|la|lo|gli|le|di|da|in|con|su|per|tra|fra|che|se|sono|ha|hanno|molto|ma|come|quando|dove|anche|fino)\b`)},
	{"pt", regexp.MustCompile(`(?i)\b(o|a|os|as|de|em|um|uma|com|por|para|que|se|tem|muito|mais|mas|como|quando|onde|porque|sim|nao|tambem|desde)\b`)},
	{"nl", regexp.MustCompile(`(?i)\b(de|het|een|en|van|ik|te|dat|die|in|op|niet|zijn|is|was|met|als|voor|had|er|maar|om|dan|wat|mijn|men|dit|zo|door|over|bij|ook|tot|je|uit|naar|heb|hoe|heeft)\b`)},
	{"ru", regexp.MustCompile(`[\x{0400}-\x{04FF}]`)},
	{"zh", regexp.MustCompile(`[\x{4E00}-\x{9FFF}]`)},
	{"ja", regexp.MustCompile(`[\x{3040}-\x{30FF}]`)},
	{"ar", regexp.MustCompile(`[\x{0600}-\x{06FF}]`)},
}

// Noise stripped from content before asking the model to name a language.
var (
	urlPattern     = regexp.MustCompile(`https?://\S+`)
	emailPattern   = regexp.MustCompile(`\S+@\S+\.\S+`)
	acronymPattern = regexp.MustCompile(`\b[A-Z]{2,}\b`)
	datePattern    = regexp.MustCompile(`\b\d{1,4}[-/.]\d{1,2}[-/.]\d{1,4}\b`)
)

// LanguageDetector determines the natural language of quiz content.
// Results are memoized by content prefix.
type LanguageDetector struct {
	client chatCompleter // optional model-assisted fallback
	model  string
	log    *zap.SugaredLogger

	mu    sync.Mutex
	cache map[string]string
}

// NewLanguageDetector creates a detector. An empty API key disables the
// model-assisted fallback; pattern detection still runs.
func NewLanguageDetector(apiKey string) *LanguageDetector {
	d := &LanguageDetector{
		model: DefaultFileModel,
		log:   zap.NewNop().Sugar(),
		cache: make(map[string]string),
	}
	if apiKey != "" {
		d.client = openai.NewClient(apiKey)
	}
	return d
}

// Detect returns the ISO 639-1 code of the content's language. Fast-path
// Unicode range checks run first, then weighted stop-word patterns, then
// the model fallback when available; English is the default. Every result,
// from any path, is cached.
func (d *LanguageDetector) Detect(ctx context.Context, content string) string {
	key := cacheKey(content)

	d.mu.Lock()
	if code, ok := d.cache[key]; ok {
		d.mu.Unlock()
		return code
	}
	d.mu.Unlock()

	code := d.detect(ctx, content)

	d.mu.Lock()
	d.cache[key] = code
	d.mu.Unlock()
	return code
}

func (d *LanguageDetector) detect(ctx context.Context, content string) string {
	for _, rule := range scriptRules {
		if containsRange(content, rule.lo, rule.hi) {
			return rule.code
		}
	}

	best, bestCount := "en", 0
	for _, p := range languagePatterns {
		count := len(p.re.FindAllString(content, -1))
		if count > bestCount {
			best, bestCount = p.code, count
		}
	}
	if bestCount > patternMatchThreshold {
		return best
	}

	if d.client != nil {
		if code, ok := d.askModel(ctx, content); ok {
			return code
		}
	}
	return "en"
}

// askModel sends a representative sample to the model and validates the
// reported code before trusting it.
func (d *LanguageDetector) askModel(ctx context.Context, content string) (string, bool) {
	sample := languageSample(content)
	if strings.TrimSpace(sample) == "" {
		return "", false
	}

	resp, err := d.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: d.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You identify the language of text. Respond with only a two-letter ISO 639-1 language code, nothing else.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: "What language is the following text written in?\n\n" + sample,
				},
			},
			MaxTokens: 5,
		},
	)
	if err != nil {
		d.log.Warnw("language detection call failed, defaulting to English", "error", err)
		return "", false
	}
	if len(resp.Choices) == 0 {
		return "", false
	}

	raw := strings.ToLower(strings.TrimSpace(resp.Choices[0].Message.Content))
	tag, err := language.Parse(raw)
	if err != nil {
		d.log.Warnw("model returned unparseable language code", "code", raw)
		return "", false
	}
	base, _ := tag.Base()
	code := base.String()
	if !supportedLanguages[code] {
		d.log.Warnw("model returned unsupported language code", "code", code)
		return "", false
	}
	return code, true
}

// languageSample draws text from the beginning, the 40% mark, and the end
// of the content, with acronyms, emails, URLs, and dates stripped, so the
// model sees prose rather than identifiers.
func languageSample(content string) string {
	cleaned := urlPattern.ReplaceAllString(content, " ")
	cleaned = emailPattern.ReplaceAllString(cleaned, " ")
	cleaned = acronymPattern.ReplaceAllString(cleaned, " ")
	cleaned = datePattern.ReplaceAllString(cleaned, " ")

	runes := []rune(cleaned)
	const part = 200
	if len(runes) <= 3*part {
		return string(runes)
	}

	mid := int(float64(len(runes)) * 0.4)
	parts := []string{
		string(runes[:part]),
		string(runes[mid : mid+part]),
		string(runes[len(runes)-part:]),
	}
	return strings.Join(parts, " ")
}

func cacheKey(content string) string {
	runes := []rune(content)
	if len(runes) > cachePrefixLen {
		runes = runes[:cachePrefixLen]
	}
	return string(runes)
}

func containsRange(s string, lo, hi rune) bool {
	for _, r := range s {
		if r >= lo && r <= hi {
			return true
		}
	}
	return false
}
