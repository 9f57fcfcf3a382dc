package oauth

import (
	"errors"
	"strings"
)

// ErrUnsupportedProvider is returned when a provider name resolves to nothing.
var ErrUnsupportedProvider = errors.New("provider is not supported")

// Registry holds the set of available providers keyed by name.
//
// It is populated once at startup from an ordered list of constructed
// providers and is read-only afterwards.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry creates a Registry holding the given providers.
// Names are lower-cased, and a later provider with the same name wins.
func NewRegistry(providers ...Provider) *Registry {
	reg := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		reg.providers[strings.ToLower(p.Name())] = p
	}
	return reg
}

// Resolve looks up a provider by name, case-insensitively.
func (r *Registry) Resolve(name string) (Provider, error) {
	provider, ok := r.providers[strings.ToLower(name)]
	if !ok {
		return nil, ErrUnsupportedProvider
	}
	return provider, nil
}
