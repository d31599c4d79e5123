package agents

import (
	"fmt"
	"sync"
)

// Registry holds registered agents in registration order, which doubles as
// the orchestrator's invocation order.
type Registry struct {
	mu     sync.RWMutex
	agents map[Name]Agent
	order  []Name
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		agents: make(map[Name]Agent),
	}
}

// Register adds an agent. Re-registering a name replaces the agent but keeps
// its original position.
func (r *Registry) Register(agent Agent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := agent.Name()
	if _, exists := r.agents[name]; !exists {
		r.order = append(r.order, name)
	}
	r.agents[name] = agent
}

// Get returns the agent registered under name.
func (r *Registry) Get(name Name) (Agent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	agent, ok := r.agents[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAgent, name)
	}
	return agent, nil
}

// Names returns all registered names in registration order.
func (r *Registry) Names() []Name {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]Name, len(r.order))
	copy(names, r.order)
	return names
}

// List describes all registered agents in registration order.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]Info, 0, len(r.order))
	for _, name := range r.order {
		infos = append(infos, Info{
			Name:        name,
			Description: r.agents[name].Description(),
		})
	}
	return infos
}
