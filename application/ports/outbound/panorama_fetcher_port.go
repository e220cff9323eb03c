package outbound

import (
	"context"

	"github.com/anmicius0/vintage-adventure-server/domain"
)

type PanoramaFetcherPort interface {
	Fetch(ctx context.Context, req domain.PanoramaRequest) ([]byte, error)
}
