package keymap

import (
	"slices"

	"github.com/samber/lo"
)

// Resolver maps key strings to actions.
type Resolver struct {
	actions   map[string]Action   // key -> action
	keys      map[Action][]string // action -> keys, binding order
	conflicts []string
}

// NewResolver creates a resolver from bindings. A key bound twice keeps its
// first action and is reported by Conflicts.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		actions: make(map[string]Action),
		keys:    make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			if prev, ok := r.actions[key]; ok && prev != b.Action {
				r.conflicts = append(r.conflicts, key)
				continue
			}
			r.actions[key] = b.Action
			r.keys[b.Action] = append(r.keys[b.Action], key)
		}
	}
	for action, keys := range r.keys {
		r.keys[action] = lo.Uniq(keys)
	}
	return r
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.actions[key]
}

// KeysFor returns the keys bound to an action.
func (r *Resolver) KeysFor(action Action) []string {
	return r.keys[action]
}

// SourceIndex returns the zero-based version index selected by key.
func (r *Resolver) SourceIndex(key string) (int, bool) {
	if r.actions[key] != ActionSelectSource {
		return 0, false
	}
	return slices.Index(r.keys[ActionSelectSource], key), true
}

// Conflicts lists keys bound to more than one action.
func (r *Resolver) Conflicts() []string {
	return slices.Clone(r.conflicts)
}
