// Package provider abstracts the external AI services: text generation,
// speech recognition and speech synthesis.
package provider

import "context"

// CompletionRequest is one chat completion call.
type CompletionRequest struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int
}

// TextGenerator produces a raw text completion for a system+user prompt.
type TextGenerator interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// TranscriptionRequest carries raw audio bytes for recognition.
// Filename hints the container format to the provider.
type TranscriptionRequest struct {
	Filename string
	Data     []byte
}

// Word is a word-level timestamp returned by the recognizer.
type Word struct {
	Word  string
	Start float64
	End   float64
}

// TranscriptionResult is the recognizer output. The provider supplies no
// confidence estimates; callers add their own placeholders.
type TranscriptionResult struct {
	Text     string
	Duration float64
	Language string
	Words    []Word
}

// Transcriber converts recorded audio to text with word timestamps.
type Transcriber interface {
	Transcribe(ctx context.Context, req TranscriptionRequest) (*TranscriptionResult, error)
}

// SpeechRequest is one synthesis call.
type SpeechRequest struct {
	Text  string
	Voice string
	Speed float64
}

// SpeechSynthesizer renders text to MP3 audio bytes.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, req SpeechRequest) ([]byte, error)
}
