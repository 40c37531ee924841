package quizanything

import (
	"regexp"
	"strings"
)

// topicCategory is one ordered rule for topic disambiguation: the first
// category whose pattern matches the topic supplies the framing options.
type topicCategory struct {
	name    string
	pattern *regexp.Regexp
	options []ClarificationOption
}

var topicCategories = []topicCategory{
	{
		name:    "programming language",
		pattern: regexp.MustCompile(`\b(python|javascript|typescript|java|golang|go|rust|ruby|php|swift|kotlin|scala|perl|haskell|c\+\+|c#|sql|html|css)\b`),
		options: []ClarificationOption{
			{Framing: ClarifyKnowledge, Label: "Concepts & Theory", Description: "Language design, history, and how things work under the hood"},
			{Framing: ClarifySkills, Label: "Practical Skills", Description: "Syntax, idioms, and what you would actually write"},
		},
	},
	{
		name:    "human language",
		pattern: regexp.MustCompile(`\b(english|spanish|french|german|italian|portuguese|russian|dutch|chinese|mandarin|cantonese|japanese|korean|arabic|hindi|latin)\b`),
		options: []ClarificationOption{
			{Framing: ClarifyLanguage, Label: "The Language Itself", Description: "Grammar, vocabulary, and usage"},
			{Framing: ClarifyCulture, Label: "Culture & Context", Description: "The people, places, and customs behind the language"},
		},
	},
	{
		name:    "country",
		pattern: regexp.MustCompile(`\b(japan|china|india|france|germany|italy|spain|portugal|russia|brazil|mexico|egypt|canada|australia|kenya|nigeria|indonesia|malaysia|thailand|vietnam|turkey|greece)\b`),
		options: []ClarificationOption{
			{Framing: ClarifyKnowledge, Label: "History & Geography", Description: "Facts, places, and historical events"},
			{Framing: ClarifyCulture, Label: "Culture & Society", Description: "Traditions, food, arts, and daily life"},
		},
	},
	{
		name:    "academic subject",
		pattern: regexp.MustCompile(`\b(math|mathematics|algebra|calculus|statistics|physics|chemistry|biology|history|geography|geology|astronomy|economics|psychology|sociology|philosophy|anatomy)\b`),
		options: []ClarificationOption{
			{Framing: ClarifyKnowledge, Label: "Core Concepts", Description: "Definitions, laws, and foundational ideas"},
			{Framing: ClarifyApplication, Label: "Problem Solving", Description: "Applying the concepts to worked examples"},
			{Framing: ClarifyAnalytical, Label: "Analysis", Description: "Comparing, evaluating, and reasoning about the subject"},
		},
	},
	{
		name:    "business field",
		pattern: regexp.MustCompile(`\b(marketing|finance|accounting|management|sales|entrepreneurship|investing|economics|leadership|negotiation|strategy|logistics)\b`),
		options: []ClarificationOption{
			{Framing: ClarifyKnowledge, Label: "Concepts & Frameworks", Description: "Terminology, models, and theory"},
			{Framing: ClarifyBusiness, Label: "Real-World Practice", Description: "Scenarios, cases, and decisions practitioners face"},
			{Framing: ClarifyAnalytical, Label: "Analysis", Description: "Interpreting numbers, trends, and trade-offs"},
		},
	},
	{
		name:    "arts",
		pattern: regexp.MustCompile(`\b(music|painting|photography|drawing|sculpture|dance|theater|theatre|cinema|film|guitar|piano|violin|singing|poetry)\b`),
		options: []ClarificationOption{
			{Framing: ClarifyKnowledge, Label: "History & Works", Description: "Movements, artists, and famous works"},
			{Framing: ClarifyTechnique, Label: "Technique", Description: "Methods, materials, and craft"},
		},
	},
	{
		name:    "sport",
		pattern: regexp.MustCompile(`\b(football|soccer|basketball|tennis|cricket|baseball|golf|swimming|boxing|rugby|hockey|volleyball|badminton|athletics|cycling|skiing)\b`),
		options: []ClarificationOption{
			{Framing: ClarifyKnowledge, Label: "Facts & Records", Description: "Rules, history, and famous moments"},
			{Framing: ClarifyTechnique, Label: "Technique & Tactics", Description: "How the game is actually played"},
		},
	},
}

// genericTopicOptions is the fallback for a single-word topic that matched
// no category.
var genericTopicOptions = []ClarificationOption{
	{Framing: ClarifyGeneral, Label: "General Overview", Description: "A broad mix of questions about the topic"},
	{Framing: ClarifyDeep, Label: "Deep Dive", Description: "Detailed questions for someone who knows the basics"},
	{Framing: ClarifyApplication, Label: "Practical Use", Description: "How the topic is applied in practice"},
}

// DetectTopicAmbiguity checks a free-text topic for multiple reasonable
// quiz framings. A nil result means no clarification is needed and
// generation proceeds directly. The resolver is advisory only.
func DetectTopicAmbiguity(topic string) []ClarificationOption {
	normalized := strings.ToLower(strings.TrimSpace(topic))
	if normalized == "" {
		return nil
	}

	for _, cat := range topicCategories {
		if cat.pattern.MatchString(normalized) {
			return append([]ClarificationOption(nil), cat.options...)
		}
	}

	// A bare single word is inherently open-ended; multi-word topics are
	// assumed to already carry their own framing.
	if len(strings.Fields(normalized)) == 1 {
		return append([]ClarificationOption(nil), genericTopicOptions...)
	}
	return nil
}

// Document signal rules.

const (
	// docAmbiguityMinLength is the floor below which a document is too
	// small to support several distinct framings.
	docAmbiguityMinLength = 500
	// codeSignalThreshold is how many code indicators a document needs
	// before a code framing is offered.
	codeSignalThreshold = 3
	// docAmbiguityMinOptions: clarification is offered only for genuine
	// ambiguity, not a single detected signal.
	docAmbiguityMinOptions = 3
)

var (
	codeSignalPattern = regexp.MustCompile("```|\\b(func|function|def|class|import|package|#include|public static|=>)\\b")
	mathPattern       = regexp.MustCompile(`[∑∫√≈≠≤≥±×÷]|\b(theorem|equation|derivative|integral|matrix|coefficient)\b`)
	businessPattern   = regexp.MustCompile(`(?i)\b(revenue|profit|margin|stakeholder|quarterly|fiscal|market share|roi|kpi|valuation)\b`)
	researchPattern   = regexp.MustCompile(`(?i)\b(hypothesis|methodology|p-value|sample size|literature review|control group|statistically significant|findings|abstract)\b`)
)

// DetectDocumentAmbiguity scans extracted document text for signals that
// support multiple quiz framings: code, mathematical notation, business
// vocabulary, research methodology. Nil means proceed without asking.
func DetectDocumentAmbiguity(content string) []ClarificationOption {
	if len(content) < docAmbiguityMinLength {
		return nil
	}

	options := []ClarificationOption{
		{Framing: ClarifyGeneral, Label: "General Comprehension", Description: "Understanding the document's main points"},
		{Framing: ClarifyDeep, Label: "Detailed Knowledge", Description: "Specific facts and details from the document"},
	}

	if len(codeSignalPattern.FindAllString(content, codeSignalThreshold)) >= codeSignalThreshold {
		options = append(options, ClarificationOption{
			Framing: ClarifyCode, Label: "Code & Implementation",
			Description: "The code samples and how they work",
		})
	}
	if mathPattern.MatchString(content) {
		options = append(options, ClarificationOption{
			Framing: ClarifyAnalytical, Label: "Mathematical Content",
			Description: "The formulas, derivations, and quantitative reasoning",
		})
	}
	if businessPattern.MatchString(content) {
		options = append(options, ClarificationOption{
			Framing: ClarifyBusiness, Label: "Business Angle",
			Description: "The commercial figures and decisions discussed",
		})
	}
	if researchPattern.MatchString(content) {
		options = append(options, ClarificationOption{
			Framing: ClarifyTechnical, Label: "Research & Methods",
			Description: "The study design, methods, and findings",
		})
	}

	if len(options) < docAmbiguityMinOptions {
		return nil
	}
	return options
}
