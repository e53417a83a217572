// Package registry tracks the minds running in this process so the
// observability API can reach them.
package registry

import (
	"sync"

	"github.com/mindforge/collective-mind/mind"
)

type Registry struct {
	mu    sync.RWMutex
	minds map[string]*mind.Mind
}

func New() *Registry {
	return &Registry{minds: make(map[string]*mind.Mind)}
}

func (r *Registry) Register(m *mind.Mind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.minds[m.Name()] = m
}

func (r *Registry) Get(name string) *mind.Mind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.minds[name]
}

func (r *Registry) All() []*mind.Mind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	minds := make([]*mind.Mind, 0, len(r.minds))
	for _, m := range r.minds {
		minds = append(minds, m)
	}
	return minds
}
