package state

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// ID prefixes, one per entity kind.
const (
	PrefixSubject  = "subject"
	PrefixChapter  = "chapter"
	PrefixActivity = "activity"
	PrefixTest     = "test"
	PrefixRevision = "revision"
)

// IDGenerator produces ids for newly created entities.
type IDGenerator interface {
	NewID(prefix string) string
}

// UUIDGenerator yields "<prefix>-<uuid>" ids.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(prefix string) string {
	return prefix + "-" + uuid.New().String()
}

// SequenceGenerator yields "<prefix>-<n>" from a single counter. Used in tests
// for predictable ids.
type SequenceGenerator struct {
	mu sync.Mutex
	n  int
}

func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{}
}

func (g *SequenceGenerator) NewID(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return prefix + "-" + strconv.Itoa(g.n)
}
