package lint

import (
	"cmp"
	"maps"
	"slices"
	"sync"
)

// Registry indexes rules by ID, name and alias. It is safe for concurrent
// use; rules are registered from init functions and read by every worker.
type Registry struct {
	mu      sync.RWMutex
	rules   map[string]Rule   // ID -> rule
	names   map[string]string // name -> ID
	aliases map[string]string // alias -> ID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rules:   make(map[string]Rule),
		names:   make(map[string]string),
		aliases: make(map[string]string),
	}
}

// Register adds rule, replacing any rule with the same ID.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.rules[rule.ID()]; ok {
		delete(r.names, old.Name())
	}
	r.rules[rule.ID()] = rule
	r.names[rule.Name()] = rule.ID()
}

// RegisterAlias makes alias resolve to ruleID. The target does not have to
// be registered yet; an alias to an unknown ID simply never resolves.
func (r *Registry) RegisterAlias(alias, ruleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = ruleID
}

// Get looks key up as an ID, then as a name. Aliases are not consulted;
// use Resolve for user input.
func (r *Registry) Get(key string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if rule, ok := r.rules[key]; ok {
		return rule, true
	}
	return r.byNameLocked(key)
}

// GetByID returns the rule registered under id.
func (r *Registry) GetByID(id string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[id]
	return rule, ok
}

// GetByName returns the rule whose Name is name.
func (r *Registry) GetByName(name string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byNameLocked(name)
}

// Resolve maps an ID, name or alias to the canonical rule ID.
func (r *Registry) Resolve(key string) (string, Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id := key
	if _, ok := r.rules[id]; !ok {
		if named, ok := r.names[key]; ok {
			id = named
		} else if aliased, ok := r.aliases[key]; ok {
			id = aliased
		}
	}

	rule, ok := r.rules[id]
	if !ok {
		return "", nil, false
	}
	return id, rule, true
}

// AliasesOf returns the sorted aliases that resolve to id.
func (r *Registry) AliasesOf(id string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for alias, target := range r.aliases {
		if target == id {
			out = append(out, alias)
		}
	}
	slices.Sort(out)
	return out
}

// Rules returns every rule ordered by ID.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.SortedFunc(maps.Values(r.rules), func(a, b Rule) int {
		return cmp.Compare(a.ID(), b.ID())
	})
}

// IDs returns every registered ID in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.rules))
}

func (r *Registry) byNameLocked(name string) (Rule, bool) {
	id, ok := r.names[name]
	if !ok {
		return nil, false
	}
	rule, ok := r.rules[id]
	return rule, ok
}

// DefaultRegistry holds the built-in rules; package rules fills it from init.
//
//nolint:gochecknoglobals // Rules self-register here.
var DefaultRegistry = NewRegistry()
