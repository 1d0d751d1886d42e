package provider

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient implements TextGenerator, Transcriber and SpeechSynthesizer
// against the OpenAI API. A BaseURL override supports OpenAI-compatible
// gateways.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates a provider client. The API key is required.
func NewOpenAIClient(apiKey, model, baseURL string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4o
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}, nil
}

// ModelID returns the chat model in use.
func (c *OpenAIClient) ModelID() string {
	return c.model
}

// Complete runs a chat completion and returns the raw assistant text.
func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	messages := []openai.ChatCompletionMessage{}
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.User,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", wrapOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

// Transcribe sends audio to whisper-1 asking for English verbose JSON
// with word-level timestamps.
func (c *OpenAIClient) Transcribe(ctx context.Context, req TranscriptionRequest) (*TranscriptionResult, error) {
	filename := req.Filename
	if filename == "" {
		filename = "recording.webm"
	}

	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		Reader:   bytes.NewReader(req.Data),
		FilePath: filename,
		Language: "en",
		Format:   openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []openai.TranscriptionTimestampGranularity{
			openai.TranscriptionTimestampGranularityWord,
		},
	})
	if err != nil {
		return nil, wrapOpenAIError(err)
	}

	result := &TranscriptionResult{
		Text:     strings.TrimSpace(resp.Text),
		Duration: resp.Duration,
		Language: resp.Language,
	}
	for _, w := range resp.Words {
		result.Words = append(result.Words, Word{Word: w.Word, Start: w.Start, End: w.End})
	}
	return result, nil
}

// Synthesize renders text to MP3 with the tts-1-hd model.
func (c *OpenAIClient) Synthesize(ctx context.Context, req SpeechRequest) ([]byte, error) {
	resp, err := c.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model: openai.TTSModel1HD,
		Input: req.Text,
		Voice: openai.SpeechVoice(req.Voice),
		Speed: req.Speed,
	})
	if err != nil {
		return nil, wrapOpenAIError(err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read speech stream: %w", err)
	}
	return audio, nil
}

// wrapOpenAIError keeps the provider status visible in logs without
// leaking the request payload.
func wrapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("openai: status %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
	}
	return fmt.Errorf("openai: %w", err)
}
