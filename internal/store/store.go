// Package store persists generated artifacts as an audit trail. Writes are
// best-effort: the request path never waits on them and never sees their
// errors.
package store

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/storyclass/storyclass-backend/internal/model"
)

// EvaluationRecord is one graded answer. UserID is the opaque bearer value
// from the request, stored without verification.
type EvaluationRecord struct {
	UserID              string    `json:"user_id"`
	Question            string    `json:"question"`
	StudentAnswer       string    `json:"student_answer"`
	StoryContent        string    `json:"story_content"`
	OverallScore        int       `json:"overall_score"`
	ContentAccuracy     int       `json:"content_accuracy"`
	QuestionRelevance   int       `json:"question_relevance"`
	LanguageUsage       int       `json:"language_usage"`
	Completeness        int       `json:"completeness"`
	Feedback            string    `json:"feedback"`
	Suggestions         []string  `json:"suggestions"`
	Strengths           []string  `json:"strengths"`
	AreasForImprovement []string  `json:"areas_for_improvement"`
	CreatedAt           time.Time `json:"created_at"`
}

// TranscriptionRecord is one recognized clip with its audio inline.
type TranscriptionRecord struct {
	UserID      string                  `json:"user_id"`
	Text        string                  `json:"text"`
	Confidence  float64                 `json:"confidence"`
	Words       []model.TranscribedWord `json:"words"`
	Duration    float64                 `json:"duration"`
	Language    string                  `json:"language"`
	AudioBase64 string                  `json:"audio_base64"`
	CreatedAt   time.Time               `json:"created_at"`
}

// SpeechRecord is metadata for one synthesized clip. The audio bytes are
// handed to the store separately so backends choose their own blob home.
type SpeechRecord struct {
	UserID      string    `json:"user_id"`
	Text        string    `json:"text"`
	Voice       string    `json:"voice"`
	Speed       float64   `json:"speed"`
	ByteSize    int       `json:"byte_size"`
	StoragePath string    `json:"storage_path"`
	CreatedAt   time.Time `json:"created_at"`
}

// ArtifactStore writes generated artifacts to the configured backend.
type ArtifactStore interface {
	SaveEvaluation(ctx context.Context, rec *EvaluationRecord) error
	SaveTranscription(ctx context.Context, rec *TranscriptionRecord) error
	SaveSpeech(ctx context.Context, rec *SpeechRecord, audio []byte) error
}

// asyncTimeout bounds a detached write; it is independent of the
// originating request, which has already been answered.
const asyncTimeout = 15 * time.Second

// Async runs fn detached from the caller with its own timeout. Errors are
// logged and swallowed.
func Async(log zerolog.Logger, op string, fn func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), asyncTimeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			log.Error().Err(err).Str("op", op).Msg("Best-effort persistence failed")
		}
	}()
}
