package outbound

import "context"

type PromptGeneratorPort interface {
	Generate(ctx context.Context, story string) (string, error)
}
