package outbound

import (
	"context"

	"github.com/anmicius0/vintage-adventure-server/domain"
)

type TranscriberPort interface {
	Transcribe(ctx context.Context, job domain.TranscriptionJob) (*domain.Transcription, error)
}
