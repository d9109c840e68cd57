package repository

import "context"

// StateRepo persists the serialized survey state under a single key.
// Load returns nil, nil when nothing has been stored yet.
type StateRepo interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// DefaultStateKey names the stored document when no key is configured
const DefaultStateKey = "survey-portal-state"
