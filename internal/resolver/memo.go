package resolver

import (
	"sync"

	"github.com/nkalandadze/zmna-backend/internal/domain"
)

type memoKey struct {
	verbID  int
	preverb string
}

// Memo caches Resolve results per (verb id, preverb). Safe because
// resolution is deterministic over an unchanged document; Drop must be
// called whenever the underlying document is invalidated.
type Memo struct {
	mu      sync.RWMutex
	results map[memoKey]domain.ResolvedConjugation
}

// NewMemo creates an empty Memo.
func NewMemo() *Memo {
	return &Memo{results: map[memoKey]domain.ResolvedConjugation{}}
}

// Resolve returns the memoized result for (doc.ID, preverb), computing
// it on first use.
func (m *Memo) Resolve(doc *domain.VerbDocument, preverb string) domain.ResolvedConjugation {
	if doc == nil {
		return domain.ResolvedConjugation{}
	}

	key := memoKey{verbID: doc.ID, preverb: preverb}

	m.mu.RLock()
	cached, ok := m.results[key]
	m.mu.RUnlock()
	if ok {
		return cached
	}

	resolved := Resolve(doc, preverb)

	m.mu.Lock()
	m.results[key] = resolved
	m.mu.Unlock()

	return resolved
}

// Drop removes all memoized results for a verb id.
func (m *Memo) Drop(verbID int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.results {
		if key.verbID == verbID {
			delete(m.results, key)
		}
	}
}
