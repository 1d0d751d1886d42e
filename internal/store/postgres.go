package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore writes artifacts over a direct database connection.
// Audio blobs are kept inline as bytea; no object storage exists here.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a store backed by the given pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) SaveEvaluation(ctx context.Context, rec *EvaluationRecord) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO evaluations
		 (user_id, question, student_answer, story_content,
		  overall_score, content_accuracy, question_relevance, language_usage, completeness,
		  feedback, suggestions, strengths, areas_for_improvement, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		rec.UserID, rec.Question, rec.StudentAnswer, rec.StoryContent,
		rec.OverallScore, rec.ContentAccuracy, rec.QuestionRelevance, rec.LanguageUsage, rec.Completeness,
		rec.Feedback, rec.Suggestions, rec.Strengths, rec.AreasForImprovement, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert evaluation: %w", err)
	}
	return nil
}

func (s *PostgresStore) SaveTranscription(ctx context.Context, rec *TranscriptionRecord) error {
	words, err := json.Marshal(rec.Words)
	if err != nil {
		return fmt.Errorf("marshal words: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO transcriptions
		 (user_id, text, confidence, words, duration, language, audio_base64, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.UserID, rec.Text, rec.Confidence, words, rec.Duration, rec.Language,
		rec.AudioBase64, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert transcription: %w", err)
	}
	return nil
}

func (s *PostgresStore) SaveSpeech(ctx context.Context, rec *SpeechRecord, audio []byte) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO speech_assets
		 (user_id, text, voice, speed, byte_size, audio, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.UserID, rec.Text, rec.Voice, rec.Speed, rec.ByteSize, audio, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert speech asset: %w", err)
	}
	return nil
}
