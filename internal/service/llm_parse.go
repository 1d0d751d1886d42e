package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/storyclass/storyclass-backend/internal/model"
)

// stripCodeFences removes a wrapping Markdown code fence from LLM output.
// Models regularly wrap JSON in ```json blocks despite being told not to.
func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)

	switch {
	case strings.HasPrefix(s, "```json"):
		s = strings.TrimPrefix(s, "```json")
	case strings.HasPrefix(s, "```"):
		s = strings.TrimPrefix(s, "```")
	default:
		return s
	}

	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// parseMaterial decodes LLM output into a material bundle. The top-level
// "short_story" and "teacher_script" keys must both be present; anything
// else counts as a parse failure and triggers the fallback path.
func parseMaterial(raw string) (*model.GeneratedMaterial, error) {
	cleaned := stripCodeFences(raw)

	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &keys); err != nil {
		return nil, fmt.Errorf("decode material JSON: %w", err)
	}
	for _, required := range []string{"short_story", "teacher_script"} {
		if _, ok := keys[required]; !ok {
			return nil, fmt.Errorf("material JSON missing %q", required)
		}
	}

	var material model.GeneratedMaterial
	if err := json.Unmarshal([]byte(cleaned), &material); err != nil {
		return nil, fmt.Errorf("decode material JSON: %w", err)
	}
	if material.ShortStory.Content == "" {
		return nil, fmt.Errorf("material JSON has empty story content")
	}
	return &material, nil
}

// parseEvaluation decodes LLM grading output. "overall_score" must be
// present and numeric.
func parseEvaluation(raw string) (*model.EvaluationResult, error) {
	cleaned := stripCodeFences(raw)

	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &keys); err != nil {
		return nil, fmt.Errorf("decode evaluation JSON: %w", err)
	}
	rawScore, ok := keys["overall_score"]
	if !ok {
		return nil, fmt.Errorf("evaluation JSON missing overall_score")
	}
	var score float64
	if err := json.Unmarshal(rawScore, &score); err != nil {
		return nil, fmt.Errorf("evaluation overall_score is not numeric: %w", err)
	}

	var result model.EvaluationResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, fmt.Errorf("decode evaluation JSON: %w", err)
	}
	return &result, nil
}
