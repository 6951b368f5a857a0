package stt

import "context"

// Provider converts recorded audio into plain text. The call is
// synchronous and is the dominant latency source of the pipeline;
// callers bound it with the request context.
type Provider interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}
