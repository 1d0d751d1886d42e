package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/storyclass/storyclass-backend/internal/model"
	"github.com/storyclass/storyclass-backend/internal/provider"
)

// Degradation records that a response was served from fallback or demo data
// instead of a genuine provider result. The wire payload stays uniform; only
// logs and tests see the difference.
type Degradation struct {
	Reason string
	Err    error
}

// Degradation reasons.
const (
	DegradedNoProvider    = "provider_not_configured"
	DegradedProviderError = "provider_error"
	DegradedParseError    = "parse_error"
)

// Generation sampling parameters are fixed; callers cannot tune them.
const (
	generationTemperature = 0.7
	generationMaxTokens   = 3000
)

// MaterialService builds lesson materials from the three target lists.
type MaterialService struct {
	gen provider.TextGenerator
	log zerolog.Logger
}

// NewMaterialService creates a MaterialService. A nil generator means the
// provider key is not configured and every call returns demo material.
func NewMaterialService(gen provider.TextGenerator, log zerolog.Logger) *MaterialService {
	return &MaterialService{gen: gen, log: log}
}

// Generate produces a complete material bundle. The returned material is
// always well-formed; a non-nil Degradation marks demo or fallback data.
func (s *MaterialService) Generate(ctx context.Context, req model.GenerationRequest) (*model.GeneratedMaterial, *Degradation) {
	if s.gen == nil {
		s.log.Warn().Msg("Generation provider not configured, serving demo material")
		return DemoMaterial(req), &Degradation{Reason: DegradedNoProvider}
	}

	system, user := buildGenerationPrompt(req)

	raw, err := s.gen.Complete(ctx, provider.CompletionRequest{
		System:      system,
		User:        user,
		Temperature: generationTemperature,
		MaxTokens:   generationMaxTokens,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("Generation call failed, serving fallback material")
		return FallbackMaterial(req), &Degradation{Reason: DegradedProviderError, Err: err}
	}

	material, err := parseMaterial(raw)
	if err != nil {
		s.log.Error().Err(err).Str("raw_prefix", prefix(raw, 200)).
			Msg("Generation output unparsable, serving fallback material")
		return FallbackMaterial(req), &Degradation{Reason: DegradedParseError, Err: err}
	}

	// The unit always echoes the request, whatever the model produced.
	material.Unit = unitFromRequest(req)
	return material, nil
}

func unitFromRequest(req model.GenerationRequest) model.Unit {
	return model.Unit{
		TargetCommunicativeFunctions: req.TargetCommunicativeFunctions,
		TargetGrammarForms:           req.TargetGrammarForms,
		TargetVocabulary:             req.TargetVocabulary,
	}
}

func buildGenerationPrompt(req model.GenerationRequest) (system, user string) {
	system = `You are an expert English teacher creating materials for Korean elementary school students. You design short stories, detailed bilingual teacher scripts and rewrite activities. Respond with JSON only, no surrounding text.`

	var b strings.Builder
	b.WriteString("Create English teaching materials with these targets:\n")
	b.WriteString("- Communicative functions: " + strings.Join(req.TargetCommunicativeFunctions, ", ") + "\n")
	b.WriteString("- Grammar forms: " + strings.Join(req.TargetGrammarForms, ", ") + "\n")
	b.WriteString("- Vocabulary: " + strings.Join(req.TargetVocabulary, ", ") + "\n")
	b.WriteString(`
Requirements:
1. "short_story": an elementary-level story of 8-10 sentences, each sentence 9 words or fewer, naturally using every vocabulary word and grammar form above. Include "title", "content", "word_count", "sentence_count".
2. "teacher_script": seven stages, each a list of lines. Every line is English followed by a Korean gloss in parentheses. Stages: "opening", "during_reading", "after_reading", "key_expression_practice", "retelling_guidance", "evaluation_criteria", "wrap_up".
3. "rewrite_activities":
   - "vocabulary_fill": the story with exactly 5 vocabulary words replaced by "______" ("instructions", "story_with_blanks", "answer_words").
   - "full_rewrite": instructions for rewriting the story freely plus "rubric_dimensions", a 9-item story-grammar rubric (setting, characters, initiating event, feelings, goal, attempts, outcome, resolution, lesson).

Return a single JSON object with keys "short_story", "teacher_script" and "rewrite_activities".`)

	return system, b.String()
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
