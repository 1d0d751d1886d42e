package store

import "context"

// NoopStore discards all artifacts. Used when no persistence backend is
// configured.
type NoopStore struct{}

// NewNoopStore creates a NoopStore.
func NewNoopStore() *NoopStore {
	return &NoopStore{}
}

func (s *NoopStore) SaveEvaluation(ctx context.Context, rec *EvaluationRecord) error {
	return nil
}

func (s *NoopStore) SaveTranscription(ctx context.Context, rec *TranscriptionRecord) error {
	return nil
}

func (s *NoopStore) SaveSpeech(ctx context.Context, rec *SpeechRecord, audio []byte) error {
	return nil
}
