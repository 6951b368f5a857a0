package supabase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"mediscribe-be/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownload(t *testing.T) {
	audio := []byte{0x1a, 0x45, 0xdf, 0xa3} // webm magic, content is opaque anyway

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))

		switch r.URL.Path {
		case "/storage/v1/object/consult-audio/recording.webm":
			w.Write(audio)
		case "/storage/v1/object/consult-audio/missing.webm":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"bucket unavailable"}`))
		}
	}))
	defer srv.Close()

	client := NewSupabaseStorageClient(srv.URL, "service-key")

	t.Run("found", func(t *testing.T) {
		got, err := client.Download(context.Background(), "consult-audio", "recording.webm")
		require.NoError(t, err)
		assert.Equal(t, audio, got)
	})

	t.Run("missing object", func(t *testing.T) {
		_, err := client.Download(context.Background(), "consult-audio", "missing.webm")
		require.Error(t, err)
		assert.ErrorIs(t, err, storage.ErrObjectNotFound)
	})

	t.Run("path with reserved characters", func(t *testing.T) {
		escaped := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// An unescaped "?" would have truncated the path into a query
			assert.Empty(t, r.URL.RawQuery)
			assert.Equal(t, "/storage/v1/object/consult-audio/2026 recordings/visit 01?.webm", r.URL.Path)
			w.Write(audio)
		}))
		defer escaped.Close()

		got, err := NewSupabaseStorageClient(escaped.URL, "service-key").
			Download(context.Background(), "consult-audio", "2026 recordings/visit 01?.webm")
		require.NoError(t, err)
		assert.Equal(t, audio, got)
	})

	t.Run("transfer error", func(t *testing.T) {
		_, err := client.Download(context.Background(), "other-bucket", "x.webm")
		require.Error(t, err)
		assert.NotErrorIs(t, err, storage.ErrObjectNotFound)
		assert.Contains(t, err.Error(), "bucket unavailable")
	})
}
