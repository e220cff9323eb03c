package outbound

import (
	"context"

	"github.com/anmicius0/vintage-adventure-server/domain"
)

type GeocoderPort interface {
	FindPlace(ctx context.Context, query string) (domain.GeoPoint, error)
}
