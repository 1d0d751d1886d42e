package model

// EvaluationRequest carries a student answer for grading. All three
// fields must be present; empty strings are accepted as-is (the pointer
// binding rejects only missing keys, not blank values).
type EvaluationRequest struct {
	Question      *string `json:"question" binding:"required"`
	StudentAnswer *string `json:"studentAnswer" binding:"required"`
	StoryContent  *string `json:"storyContent" binding:"required"`
}

// EvaluationResult is the rubric-based grading outcome. Scores are 0-100.
type EvaluationResult struct {
	OverallScore        int      `json:"overall_score"`
	ContentAccuracy     int      `json:"content_accuracy"`
	QuestionRelevance   int      `json:"question_relevance"`
	LanguageUsage       int      `json:"language_usage"`
	Completeness        int      `json:"completeness"`
	Feedback            string   `json:"feedback"`
	Suggestions         []string `json:"suggestions"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areas_for_improvement"`
}
