package domain

import (
	"fmt"
	"sync"
)

// Sequencer hands out run-scoped issue IDs, numbered sequentially per
// family: PAT-001, PAT-002, AST-001. Safe for concurrent use.
type Sequencer struct {
	mu     sync.Mutex
	counts map[string]int
}

func NewSequencer() *Sequencer {
	return &Sequencer{counts: make(map[string]int)}
}

func (s *Sequencer) Next(family string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[family]++
	return fmt.Sprintf("%s-%03d", family, s.counts[family])
}
