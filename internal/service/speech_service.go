package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/storyclass/storyclass-backend/internal/config"
	"github.com/storyclass/storyclass-backend/internal/model"
	"github.com/storyclass/storyclass-backend/internal/provider"
	"github.com/storyclass/storyclass-backend/internal/store"
)

// Speech errors surfaced to handlers.
var (
	ErrEmptyTranscription = errors.New("transcription returned empty text")
)

// MaxSpeechChars is the synthesis input limit, in characters.
const MaxSpeechChars = 4096

// The recognizer supplies no confidence estimates; these placeholders are
// reported instead and must not be read as calibrated probabilities.
const (
	placeholderConfidence     = 0.95
	placeholderWordConfidence = 0.9
)

// speechCacheTTL bounds how long synthesized audio stays in Redis.
const speechCacheTTL = 24 * time.Hour

// SpeechService relays audio to the recognizer and text to the synthesizer.
type SpeechService struct {
	stt       provider.Transcriber
	tts       provider.SpeechSynthesizer
	rdb       *redis.Client // nil disables the audio cache
	artifacts store.ArtifactStore
	log       zerolog.Logger
}

// NewSpeechService creates a SpeechService. Nil providers mark the AI key
// as unconfigured; a nil redis client disables the synthesis cache.
func NewSpeechService(stt provider.Transcriber, tts provider.SpeechSynthesizer, rdb *redis.Client, artifacts store.ArtifactStore, log zerolog.Logger) *SpeechService {
	return &SpeechService{stt: stt, tts: tts, rdb: rdb, artifacts: artifacts, log: log}
}

// Configured reports whether the speech providers are available.
func (s *SpeechService) Configured() bool {
	return s.stt != nil && s.tts != nil
}

// Transcribe forwards recorded audio to the recognizer. Blank results are
// rejected; successful ones are persisted best-effort with the audio inline.
func (s *SpeechService) Transcribe(ctx context.Context, userToken, filename string, audio []byte) (*model.TranscriptionResult, error) {
	if s.stt == nil {
		return nil, ErrProviderNotConfigured
	}

	raw, err := s.stt.Transcribe(ctx, provider.TranscriptionRequest{Filename: filename, Data: audio})
	if err != nil {
		return nil, fmt.Errorf("transcribe audio: %w", err)
	}
	if raw.Text == "" {
		return nil, ErrEmptyTranscription
	}

	result := &model.TranscriptionResult{
		Text:       raw.Text,
		Confidence: placeholderConfidence,
		Words:      make([]model.TranscribedWord, 0, len(raw.Words)),
		Duration:   raw.Duration,
		Language:   raw.Language,
	}
	for _, w := range raw.Words {
		result.Words = append(result.Words, model.TranscribedWord{
			Word:       w.Word,
			Start:      w.Start,
			End:        w.End,
			Confidence: placeholderWordConfidence,
		})
	}

	rec := &store.TranscriptionRecord{
		UserID:      userToken,
		Text:        result.Text,
		Confidence:  result.Confidence,
		Words:       result.Words,
		Duration:    result.Duration,
		Language:    result.Language,
		AudioBase64: base64.StdEncoding.EncodeToString(audio),
		CreatedAt:   time.Now().UTC(),
	}
	store.Async(s.log, "save_transcription", func(ctx context.Context) error {
		return s.artifacts.SaveTranscription(ctx, rec)
	})

	return result, nil
}

// Synthesize renders text to MP3 bytes, serving repeated requests for the
// same text/voice/speed from the Redis cache when one is configured.
func (s *SpeechService) Synthesize(ctx context.Context, userToken string, req provider.SpeechRequest) ([]byte, error) {
	if s.tts == nil {
		return nil, ErrProviderNotConfigured
	}

	cacheKey := config.CacheKey.SpeechAudioKey(speechDigest(req))
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Bytes()
		if err == nil && len(cached) > 0 {
			return cached, nil
		}
		if err != nil && !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Msg("Speech cache read failed")
		}
	}

	audio, err := s.tts.Synthesize(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("synthesize speech: %w", err)
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, cacheKey, audio, speechCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Msg("Speech cache write failed")
		}
	}

	rec := &store.SpeechRecord{
		UserID:    userToken,
		Text:      req.Text,
		Voice:     req.Voice,
		Speed:     req.Speed,
		ByteSize:  len(audio),
		CreatedAt: time.Now().UTC(),
	}
	store.Async(s.log, "save_speech", func(ctx context.Context) error {
		return s.artifacts.SaveSpeech(ctx, rec, audio)
	})

	return audio, nil
}

func speechDigest(req provider.SpeechRequest) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%.2f", req.Text, req.Voice, req.Speed))
	return hex.EncodeToString(sum[:])
}
