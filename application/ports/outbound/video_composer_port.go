package outbound

import "context"

type ComposeVideoRequest struct {
	ImageFileName string
	AudioFileName string
	CaptionLines  []string
}

// VideoComposerPort produces one MP4 from one still image and one audio track.
// Compose blocks until the encoder subprocess terminates; cleanup of the
// encoder's own output is anchored to that termination, not to the caller.
type VideoComposerPort interface {
	Compose(ctx context.Context, req ComposeVideoRequest) ([]byte, error)
}
