package providers

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

type Registry struct {
	mu      sync.RWMutex
	sources map[string]Source
}

type Descriptor struct {
	Key          string   `json:"key"`
	Name         string   `json:"name"`
	Capabilities []string `json:"capabilities,omitempty"`
}

func NewRegistry() *Registry {
	return &Registry{sources: map[string]Source{}}
}

func (r *Registry) Register(source Source) error {
	if source == nil {
		return fmt.Errorf("source is nil")
	}

	key := strings.ToLower(strings.TrimSpace(source.Key()))
	if key == "" {
		return fmt.Errorf("source key is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sources[key]; exists {
		return fmt.Errorf("source %q already registered", key)
	}

	r.sources[key] = source
	return nil
}

func (r *Registry) Get(key string) (Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	source, ok := r.sources[strings.ToLower(strings.TrimSpace(key))]
	return source, ok
}

func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]Descriptor, 0, len(r.sources))
	for _, source := range r.sources {
		items = append(items, Descriptor{
			Key:          source.Key(),
			Name:         source.Name(),
			Capabilities: capabilities(source),
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Key < items[j].Key
	})

	return items
}

func capabilities(source Source) []string {
	var out []string
	if _, ok := source.(HomeProvider); ok {
		out = append(out, "home")
	}
	if _, ok := source.(ListingProvider); ok {
		out = append(out, "listings")
	}
	if _, ok := source.(DeepLinkHandler); ok {
		out = append(out, "deeplinks")
	}
	return out
}

// ResolvedLink pairs a deep link result with the source that produced it.
type ResolvedLink struct {
	Source string         `json:"source"`
	Result DeepLinkResult `json:"result"`
}

// Resolve asks every deep-link capable source, in key order, to claim
// rawURL. It returns nil when none does.
func (r *Registry) Resolve(ctx context.Context, rawURL string) (*ResolvedLink, error) {
	for _, d := range r.List() {
		source, _ := r.Get(d.Key)
		handler, ok := source.(DeepLinkHandler)
		if !ok {
			continue
		}

		result, err := handler.HandleDeepLink(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.Key, err)
		}
		if result != nil {
			return &ResolvedLink{Source: d.Key, Result: result}, nil
		}
	}

	return nil, nil
}
