package storage

import (
	"context"
	"errors"
)

// ErrObjectNotFound distinguishes a missing object from a transfer
// failure. Callers surface it directly, there is no implicit retry.
var ErrObjectNotFound = errors.New("object not found")

// ObjectStore fetches opaque binary blobs by bucket and path. The
// returned bytes are not validated here; the audio container format is
// assumed by the transcription provider.
type ObjectStore interface {
	Download(ctx context.Context, bucket, path string) ([]byte, error)
}
