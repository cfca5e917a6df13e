package provider

import (
	"fmt"
	"sort"
)

// Registry maps exact hostnames to providers. It is read-only after construction
// and safe for concurrent use.
type Registry struct {
	providers map[string]*Provider
}

// NewRegistry validates configs and builds a Registry.
// Returns ErrConfiguration if configs is nil, empty, or any entry is invalid.
func NewRegistry(configs map[string]Config) (*Registry, error) {
	if configs == nil {
		return nil, fmt.Errorf("%w: missing provider mapping", ErrConfiguration)
	}
	if len(configs) == 0 {
		return nil, fmt.Errorf("%w: provider mapping has no hosts", ErrConfiguration)
	}

	r := &Registry{providers: make(map[string]*Provider, len(configs))}
	for host, c := range configs {
		p, err := compile(host, c)
		if err != nil {
			return nil, err
		}
		r.providers[host] = p
	}
	return r, nil
}

// Lookup returns the provider registered for hostname.
func (r *Registry) Lookup(hostname string) (*Provider, bool) {
	p, ok := r.providers[hostname]
	return p, ok
}

// Hosts returns the registered hostnames in sorted order.
func (r *Registry) Hosts() []string {
	hosts := make([]string, 0, len(r.providers))
	for h := range r.providers {
		hosts = append(hosts, h)
	}
	sort.Strings(hosts)
	return hosts
}

// Len returns the number of registered hosts.
func (r *Registry) Len() int {
	return len(r.providers)
}
