package supabase

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mediscribe-be/pkg/storage"
)

type SupabaseStorageClient struct {
	BaseURL    string
	ServiceKey string
	Client     *http.Client
}

var _ storage.ObjectStore = &SupabaseStorageClient{}

func NewSupabaseStorageClient(baseURL, serviceKey string) *SupabaseStorageClient {
	return &SupabaseStorageClient{
		BaseURL:    baseURL,
		ServiceKey: serviceKey,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Download fetches one object through the Supabase Storage REST API
// using the service role key. Single attempt; a 404 maps to
// storage.ErrObjectNotFound, everything else non-2xx is a transfer error.
func (c *SupabaseStorageClient) Download(ctx context.Context, bucket, path string) ([]byte, error) {
	objectURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.BaseURL, url.PathEscape(bucket), escapePath(path))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, objectURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.ServiceKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("storage request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s/%s", storage.ErrObjectNotFound, bucket, path)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read object body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("storage error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	return bodyBytes, nil
}

// escapePath escapes each path segment while keeping the separators,
// so object names with spaces or query characters stay intact.
func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
