package platform

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry = make(map[string]Searcher)
	mu       sync.RWMutex
)

func Register(name string, s Searcher) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = s
}

func Get(name string) (Searcher, error) {
	mu.RLock()
	defer mu.RUnlock()
	s, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("platform %q not registered (available: %v)", name, names())
	}
	return s, nil
}

func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	return names()
}

func names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
