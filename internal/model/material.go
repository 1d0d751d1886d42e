package model

// GenerationRequest carries the three target lists for one generation call.
// Each list must contain at least one entry.
type GenerationRequest struct {
	TargetCommunicativeFunctions []string `json:"target_communicative_functions" binding:"required,min=1"`
	TargetGrammarForms           []string `json:"target_grammar_forms" binding:"required,min=1"`
	TargetVocabulary             []string `json:"target_vocabulary" binding:"required,min=1"`
}

// Unit echoes the generation request inside the produced material.
type Unit struct {
	TargetCommunicativeFunctions []string `json:"target_communicative_functions"`
	TargetGrammarForms           []string `json:"target_grammar_forms"`
	TargetVocabulary             []string `json:"target_vocabulary"`
}

// ShortStory is the generated elementary-level reading text.
type ShortStory struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	WordCount     int    `json:"word_count"`
	SentenceCount int    `json:"sentence_count"`
}

// TeacherScript holds the seven lesson stages. Lines are bilingual:
// English first, Korean gloss in parentheses.
type TeacherScript struct {
	Opening               []string `json:"opening"`
	DuringReading         []string `json:"during_reading"`
	AfterReading          []string `json:"after_reading"`
	KeyExpressionPractice []string `json:"key_expression_practice"`
	RetellingGuidance     []string `json:"retelling_guidance"`
	EvaluationCriteria    []string `json:"evaluation_criteria"`
	WrapUp                []string `json:"wrap_up"`
}

// Stages returns the seven script stages in lesson order.
func (s *TeacherScript) Stages() [][]string {
	return [][]string{
		s.Opening,
		s.DuringReading,
		s.AfterReading,
		s.KeyExpressionPractice,
		s.RetellingGuidance,
		s.EvaluationCriteria,
		s.WrapUp,
	}
}

// VocabularyFill is the 5-blank cloze variant of the story.
type VocabularyFill struct {
	Instructions    string   `json:"instructions"`
	StoryWithBlanks string   `json:"story_with_blanks"`
	AnswerWords     []string `json:"answer_words"`
}

// FullRewrite asks the student to retell the story freely, graded
// against a story-grammar rubric.
type FullRewrite struct {
	Instructions     string   `json:"instructions"`
	RubricDimensions []string `json:"rubric_dimensions"`
}

// RewriteActivities groups the two rewrite artifacts.
type RewriteActivities struct {
	VocabularyFill VocabularyFill `json:"vocabulary_fill"`
	FullRewrite    FullRewrite    `json:"full_rewrite"`
}

// GeneratedMaterial is the complete lesson bundle returned by /generate.
// The shape is always well-formed: callers receive a fallback instance
// when the provider fails or returns unparsable output.
type GeneratedMaterial struct {
	Unit              Unit               `json:"unit"`
	ShortStory        ShortStory         `json:"short_story"`
	TeacherScript     TeacherScript      `json:"teacher_script"`
	RewriteActivities *RewriteActivities `json:"rewrite_activities,omitempty"`
}
