package store

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// SupabaseStore writes rows through PostgREST and audio blobs through the
// storage API, authenticated with the project anon key.
type SupabaseStore struct {
	client *resty.Client
	bucket string
}

// NewSupabaseStore creates a store for the given project URL and key.
func NewSupabaseStore(baseURL, anonKey, bucket string) *SupabaseStore {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("apikey", anonKey)
	client.SetHeader("Authorization", "Bearer "+anonKey)
	client.SetTimeout(10 * time.Second)

	return &SupabaseStore{client: client, bucket: bucket}
}

func (s *SupabaseStore) SaveEvaluation(ctx context.Context, rec *EvaluationRecord) error {
	return s.insert(ctx, "evaluations", rec)
}

func (s *SupabaseStore) SaveTranscription(ctx context.Context, rec *TranscriptionRecord) error {
	return s.insert(ctx, "transcriptions", rec)
}

// SaveSpeech uploads the audio blob to the storage bucket, then inserts the
// metadata row pointing at it.
func (s *SupabaseStore) SaveSpeech(ctx context.Context, rec *SpeechRecord, audio []byte) error {
	path := fmt.Sprintf("%s/%s.mp3", time.Now().UTC().Format("2006-01-02"), uuid.New().String())

	err := s.withRetry(ctx, func() error {
		resp, err := s.client.R().
			SetContext(ctx).
			SetHeader("Content-Type", "audio/mpeg").
			SetBody(audio).
			Post(fmt.Sprintf("/storage/v1/object/%s/%s", s.bucket, path))
		if err != nil {
			return fmt.Errorf("upload audio: %w", err)
		}
		if resp.IsError() {
			return fmt.Errorf("upload audio: status %d: %s", resp.StatusCode(), resp.String())
		}
		return nil
	})
	if err != nil {
		return err
	}

	rec.StoragePath = path
	return s.insert(ctx, "speech_assets", rec)
}

func (s *SupabaseStore) insert(ctx context.Context, table string, row interface{}) error {
	return s.withRetry(ctx, func() error {
		resp, err := s.client.R().
			SetContext(ctx).
			SetHeader("Prefer", "return=minimal").
			SetBody(row).
			Post("/rest/v1/" + table)
		if err != nil {
			return fmt.Errorf("insert %s: %w", table, err)
		}
		if resp.IsError() {
			return fmt.Errorf("insert %s: status %d: %s", table, resp.StatusCode(), resp.String())
		}
		return nil
	})
}

// withRetry gives transient hosted-database hiccups a brief second chance.
// The caller is already detached from the request, so the extra delay is
// invisible to users.
func (s *SupabaseStore) withRetry(ctx context.Context, fn func() error) error {
	return retry.Do(
		fn,
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
	)
}
