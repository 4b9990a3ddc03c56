package core

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry   = make(map[string]ViewDefinition)
	registryMu sync.RWMutex
)

// Register adds a view definition to the registry.
// Panics if a view with the same key is already registered or has no Run func.
func Register(def ViewDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[def.Info.Key]; exists {
		panic(fmt.Sprintf("view already registered: %s", def.Info.Key))
	}
	if def.Run == nil {
		panic(fmt.Sprintf("view has no run func: %s", def.Info.Key))
	}

	registry[def.Info.Key] = def
}

// Get returns a view definition by key.
// Returns false if not found.
func Get(key string) (ViewDefinition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[key]
	return def, ok
}

// RunView looks up a view by key and runs it against e.
// Returns an error wrapping ErrViewNotFound for unknown keys.
func RunView(e *Engine, key string) (ViewDefinition, []ProjectedCountry, error) {
	def, ok := Get(key)
	if !ok {
		return ViewDefinition{}, nil, fmt.Errorf("%w: %s", ErrViewNotFound, key)
	}

	rows, err := def.Run(e)
	if err != nil {
		return def, nil, fmt.Errorf("run view %s: %w", key, err)
	}
	return def, rows, nil
}

// All returns all registered view definitions.
// Sorted by group then by key for consistent ordering.
func All() []ViewDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]ViewDefinition, 0, len(registry))
	for _, def := range registry {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Info.Group != result[j].Info.Group {
			return result[i].Info.Group < result[j].Info.Group
		}
		return result[i].Info.Key < result[j].Info.Key
	})

	return result
}

// ByGroup returns all view definitions for a specific group.
// Sorted by key for consistent ordering.
func ByGroup(group string) []ViewDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	var result []ViewDefinition
	for _, def := range registry {
		if def.Info.Group == group {
			result = append(result, def)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Info.Key < result[j].Info.Key
	})

	return result
}

// Groups returns all unique group names, sorted alphabetically.
func Groups() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	seen := make(map[string]bool)
	for _, def := range registry {
		seen[def.Info.Group] = true
	}

	groups := make([]string, 0, len(seen))
	for g := range seen {
		groups = append(groups, g)
	}

	sort.Strings(groups)
	return groups
}

// ViewCount returns the number of registered views.
func ViewCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered views.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]ViewDefinition)
}
