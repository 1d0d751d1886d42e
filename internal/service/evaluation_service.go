package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/storyclass/storyclass-backend/internal/model"
	"github.com/storyclass/storyclass-backend/internal/provider"
	"github.com/storyclass/storyclass-backend/internal/store"
)

// ErrProviderNotConfigured marks endpoints that need the AI key but do not
// have a demo-data path.
var ErrProviderNotConfigured = errors.New("generation provider not configured")

// Grading sampling parameters, fixed.
const (
	evaluationTemperature = 0.3
	evaluationMaxTokens   = 1000
)

// EvaluationService grades student answers against the story they read.
type EvaluationService struct {
	gen       provider.TextGenerator
	artifacts store.ArtifactStore
	log       zerolog.Logger
}

// NewEvaluationService creates an EvaluationService.
func NewEvaluationService(gen provider.TextGenerator, artifacts store.ArtifactStore, log zerolog.Logger) *EvaluationService {
	return &EvaluationService{gen: gen, artifacts: artifacts, log: log}
}

// Configured reports whether the generation provider is available.
func (s *EvaluationService) Configured() bool {
	return s.gen != nil
}

// Evaluate grades an answer. Provider errors are returned to the caller;
// unparsable grading output is masked by the neutral fallback, recorded in
// the Degradation. Either way the result is persisted best-effort under the
// caller's opaque token.
func (s *EvaluationService) Evaluate(ctx context.Context, userToken, question, studentAnswer, storyContent string) (*model.EvaluationResult, *Degradation, error) {
	if s.gen == nil {
		return nil, nil, ErrProviderNotConfigured
	}

	system, user := buildEvaluationPrompt(question, studentAnswer, storyContent)

	raw, err := s.gen.Complete(ctx, provider.CompletionRequest{
		System:      system,
		User:        user,
		Temperature: evaluationTemperature,
		MaxTokens:   evaluationMaxTokens,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("evaluate answer: %w", err)
	}

	var degradation *Degradation
	result, parseErr := parseEvaluation(raw)
	if parseErr != nil {
		s.log.Error().Err(parseErr).Str("raw_prefix", prefix(raw, 200)).
			Msg("Evaluation output unparsable, serving neutral fallback")
		result = FallbackEvaluation()
		degradation = &Degradation{Reason: DegradedParseError, Err: parseErr}
	}

	s.persist(userToken, question, studentAnswer, storyContent, result)
	return result, degradation, nil
}

func (s *EvaluationService) persist(userToken, question, studentAnswer, storyContent string, result *model.EvaluationResult) {
	rec := &store.EvaluationRecord{
		UserID:              userToken,
		Question:            question,
		StudentAnswer:       studentAnswer,
		StoryContent:        storyContent,
		OverallScore:        result.OverallScore,
		ContentAccuracy:     result.ContentAccuracy,
		QuestionRelevance:   result.QuestionRelevance,
		LanguageUsage:       result.LanguageUsage,
		Completeness:        result.Completeness,
		Feedback:            result.Feedback,
		Suggestions:         result.Suggestions,
		Strengths:           result.Strengths,
		AreasForImprovement: result.AreasForImprovement,
		CreatedAt:           time.Now().UTC(),
	}
	store.Async(s.log, "save_evaluation", func(ctx context.Context) error {
		return s.artifacts.SaveEvaluation(ctx, rec)
	})
}

func buildEvaluationPrompt(question, studentAnswer, storyContent string) (system, user string) {
	system = `당신은 초등학교 영어 교사입니다. 학생의 답변을 평가해주세요.

평가 기준:
1. 내용의 정확성 (스토리 내용과 일치하는가?)
2. 질문에 대한 적절성 (질문에 제대로 답했는가?)
3. 언어 사용 (초등학생 수준에 맞는 영어인가?)
4. 완성도 (완전한 문장으로 답했는가?)

다음 JSON 형식으로 응답해주세요:
{
  "overall_score": 0-100,
  "content_accuracy": 0-100,
  "question_relevance": 0-100,
  "language_usage": 0-100,
  "completeness": 0-100,
  "feedback": "구체적인 피드백 (한국어)",
  "suggestions": ["개선 제안 1", "개선 제안 2", "개선 제안 3"],
  "strengths": ["강점 1", "강점 2"],
  "areas_for_improvement": ["개선 영역 1", "개선 영역 2"]
}`

	user = fmt.Sprintf(`다음 정보를 바탕으로 학생의 답변을 평가해주세요:

질문: %s

학생 답변: %s

스토리 내용: %s

위의 JSON 형식으로 평가 결과를 제공해주세요.`, question, studentAnswer, storyContent)

	return system, user
}
