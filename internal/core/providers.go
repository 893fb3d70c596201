package core

import "context"

// Generator is the external text-generation collaborator.
type Generator interface {
	Generate(ctx context.Context, history []ChatMessage) (string, error)
}
