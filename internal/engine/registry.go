package engine

import (
	"fmt"
	"sync"
)

// Registry supplies one Analyzer per domain, built on first use and reused
// for the process lifetime. It is an explicit dependency handed to callers
// rather than a package-level get-or-create singleton.
type Registry struct {
	mu    sync.Mutex
	order []string
	byTag map[string]*entry
}

type entry struct {
	once     sync.Once
	build    func() Domain
	analyzer *Analyzer
	err      error
}

func NewRegistry() *Registry {
	return &Registry{byTag: make(map[string]*entry)}
}

// Register records a lazy domain constructor under tag. The constructor runs
// at most once, on the first Analyzer call for that tag.
func (r *Registry) Register(tag string, build func() Domain) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byTag[tag]; dup {
		return fmt.Errorf("engine: domain %q already registered", tag)
	}
	r.byTag[tag] = &entry{build: build}
	r.order = append(r.order, tag)
	return nil
}

// Analyzer returns the singleton analyzer for tag, constructing it once.
func (r *Registry) Analyzer(tag string) (*Analyzer, error) {
	r.mu.Lock()
	e, ok := r.byTag[tag]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("engine: unknown domain %q", tag)
	}
	e.once.Do(func() {
		e.analyzer, e.err = NewAnalyzer(e.build())
	})
	return e.analyzer, e.err
}

// Analyzers returns every registered analyzer in registration order.
func (r *Registry) Analyzers() ([]*Analyzer, error) {
	r.mu.Lock()
	tags := make([]string, len(r.order))
	copy(tags, r.order)
	r.mu.Unlock()

	out := make([]*Analyzer, 0, len(tags))
	for _, t := range tags {
		a, err := r.Analyzer(t)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// Tags returns the registered domain tags in registration order.
func (r *Registry) Tags() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
