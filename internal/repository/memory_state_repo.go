package repository

import (
	"context"
	"sync"
)

type memoryStateRepo struct {
	mu   sync.RWMutex
	data []byte
}

// NewMemoryStateRepo keeps the document in process memory
func NewMemoryStateRepo() StateRepo {
	return &memoryStateRepo{}
}

func (r *memoryStateRepo) Load(ctx context.Context) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.data == nil {
		return nil, nil
	}
	return append([]byte{}, r.data...), nil
}

func (r *memoryStateRepo) Save(ctx context.Context, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append([]byte{}, data...)
	return nil
}
