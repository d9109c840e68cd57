package idgen

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Generator produces identifiers of the form "<prefix>-<suffix>"
type Generator interface {
	Next(prefix string) string
}

type uuidGenerator struct{}

// NewUUID returns the process default generator backed by random UUIDs
func NewUUID() Generator {
	return uuidGenerator{}
}

func (uuidGenerator) Next(prefix string) string {
	return Generate(prefix)
}

// Generate returns prefix plus 12 hex characters taken from a random UUID.
// That keeps 48 random bits, so collisions become likely after roughly
// 16 million ids (2^24), far beyond what one portal stores.
func Generate(prefix string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "-" + id[:12]
}

// Sequence is a deterministic generator: question-1, question-2, ...
// Counters are shared across prefixes so every id is distinct.
type Sequence struct {
	mu sync.Mutex
	n  int
}

// NewSequence creates a counter-backed generator starting at 1
func NewSequence() *Sequence {
	return &Sequence{}
}

func (s *Sequence) Next(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s-%d", prefix, s.n)
}
