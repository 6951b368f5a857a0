package whisper

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *openai.Client {
	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = baseURL + "/v1"
	return openai.NewClientWithConfig(cfg)
}

func TestTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/transcriptions", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(10<<20))

		assert.Equal(t, "whisper-1", r.FormValue("model"))
		assert.Equal(t, "en", r.FormValue("language"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "recording.webm", header.Filename)

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, []byte("audio-bytes"), content)

		json.NewEncoder(w).Encode(map[string]string{"text": "hello doctor"})
	}))
	defer srv.Close()

	provider := NewWhisperProviderWithClient(newTestClient(srv.URL), "whisper-1", "en")

	text, err := provider.Transcribe(context.Background(), []byte("audio-bytes"), "recording.webm")
	require.NoError(t, err)
	assert.Equal(t, "hello doctor", text)
}

func TestTranscribeProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "Rate limit reached", "type": "requests"},
		})
	}))
	defer srv.Close()

	provider := NewWhisperProviderWithClient(newTestClient(srv.URL), "whisper-1", "en")

	_, err := provider.Transcribe(context.Background(), []byte("audio-bytes"), "recording.webm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transcription failed")
}
