package whisper

import (
	"bytes"
	"context"
	"fmt"

	"mediscribe-be/pkg/stt"

	"github.com/sashabaranov/go-openai"
)

type WhisperProvider struct {
	Client    *openai.Client
	ModelName string
	Language  string
}

var _ stt.Provider = &WhisperProvider{}

func NewWhisperProvider(apiKey, modelName, language string) *WhisperProvider {
	return &WhisperProvider{
		Client:    openai.NewClient(apiKey),
		ModelName: modelName,
		Language:  language,
	}
}

// NewWhisperProviderWithClient injects a preconfigured client. Used by
// tests to point the provider at a local HTTP server.
func NewWhisperProviderWithClient(client *openai.Client, modelName, language string) *WhisperProvider {
	return &WhisperProvider{
		Client:    client,
		ModelName: modelName,
		Language:  language,
	}
}

// Transcribe uploads the audio as multipart form data and returns the
// recognized text. The language hint is fixed at deployment time, never
// derived from the audio. Provider failures are surfaced as-is; the
// caller decides whether a manual retry makes sense.
func (p *WhisperProvider) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	req := openai.AudioRequest{
		Model:    p.ModelName,
		FilePath: filename,
		Reader:   bytes.NewReader(audio),
		Language: p.Language,
	}

	resp, err := p.Client.CreateTranscription(ctx, req)
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}

	return resp.Text, nil
}
