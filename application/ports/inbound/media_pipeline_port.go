package inbound

import (
	"context"

	"github.com/anmicius0/vintage-adventure-server/domain"
)

// MediaPipelinePort is the gateway's six logical operations. Each call is
// independent; no state is shared between concurrent requests.
type MediaPipelinePort interface {
	FindPlace(ctx context.Context, query string) (domain.GeoPoint, error)
	FetchStreetview(ctx context.Context, req domain.PanoramaRequest) ([]byte, error)
	TranscribeSpeech(ctx context.Context, job domain.TranscriptionJob) (*domain.Transcription, error)
	GeneratePrompt(ctx context.Context, story string) (string, error)
	StylizeImage(ctx context.Context, job domain.StylizationJob) ([]byte, error)
	ComposeVideo(ctx context.Context, job domain.VideoCompositionJob) ([]byte, error)
}
