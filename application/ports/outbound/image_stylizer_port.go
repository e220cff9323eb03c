package outbound

import (
	"context"

	"github.com/anmicius0/vintage-adventure-server/domain"
)

type ImageStylizerPort interface {
	Stylize(ctx context.Context, job domain.StylizationJob) ([]byte, error)
}
