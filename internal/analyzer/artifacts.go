package analyzer

import (
	"sync"

	"github.com/yigitcukuren/mago-sub004/internal/types"
)

// artifactMap is the per-expression type table (spec §3.4), shared
// across concurrently analyzed function-likes.
type artifactMap struct {
	mu    sync.RWMutex
	types map[types.SourceSpan]*types.Union
}

func newArtifactMap() *artifactMap {
	return &artifactMap{types: make(map[types.SourceSpan]*types.Union)}
}

func (m *artifactMap) get(span types.SourceSpan) (*types.Union, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.types[span]
	return u, ok
}

func (m *artifactMap) set(span types.SourceSpan, u *types.Union) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.types[span] = u
}
