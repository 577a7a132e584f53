// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discovery

import (
	"net/http"

	"github.com/zagdt/e-library-backend-sub001/pkg/types"
)

// Registry is a fixed mapping from source identifier to client. Clients are
// registered once at startup; the map is never mutated afterwards, so reads
// need no synchronization.
type Registry struct {
	order   []string
	clients map[string]Client
}

// NewRegistry returns a registry holding the given clients in order.
func NewRegistry(clients ...Client) *Registry {
	r := &Registry{clients: make(map[string]Client)}
	for _, c := range clients {
		r.register(c)
	}
	return r
}

func (r *Registry) register(c Client) {
	name := c.Name()
	if _, ok := r.clients[name]; ok {
		return
	}
	r.clients[name] = c
	r.order = append(r.order, name)
}

// Names returns all registered source identifiers in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Resolve returns the clients for the requested source identifiers, in
// request order, skipping unknown names and duplicates. An empty or fully
// unknown request resolves to all registered clients.
func (r *Registry) Resolve(names []string) ([]Client, []string) {
	var clients []Client
	var resolved []string
	seen := make(map[string]bool)
	for _, name := range names {
		c, ok := r.clients[name]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		clients = append(clients, c)
		resolved = append(resolved, name)
	}
	if len(clients) > 0 {
		return clients, resolved
	}

	clients = make([]Client, 0, len(r.order))
	for _, name := range r.order {
		clients = append(clients, r.clients[name])
	}
	return clients, r.Names()
}

// Catalog returns static metadata for every registered source, in
// registration order.
func (r *Registry) Catalog() []types.SourceInfo {
	infos := make([]types.SourceInfo, 0, len(r.order))
	for _, name := range r.order {
		infos = append(infos, sourceInfo(name))
	}
	return infos
}

// BuildRegistry constructs the enabled source clients from configuration.
// API keys and polite-pool contact addresses must already be merged into cfg.
func BuildRegistry(cfg types.DiscoveryConfig, client *http.Client) *Registry {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	r := NewRegistry()
	if cfg.EnableOpenAlex {
		r.register(&OpenAlexClient{Client: client, UserAgent: cfg.UserAgent, Email: cfg.OpenAlexEmail})
	}
	if cfg.EnableDOAJ {
		r.register(&DOAJClient{Client: client, UserAgent: cfg.UserAgent})
	}
	if cfg.EnableArxiv {
		r.register(&ArxivClient{Client: client, UserAgent: cfg.UserAgent})
	}
	if cfg.EnableSemanticScholar {
		r.register(&SemanticScholarClient{Client: client, UserAgent: cfg.UserAgent, APIKey: cfg.SemanticScholarAPIKey})
	}
	if cfg.EnableCrossref {
		r.register(&CrossrefClient{Client: client, UserAgent: cfg.UserAgent, Mailto: cfg.CrossrefMailto})
	}
	if cfg.EnableCORE {
		r.register(&COREClient{Client: client, UserAgent: cfg.UserAgent, APIKey: cfg.COREAPIKey})
	}
	if cfg.EnablePubMed {
		r.register(NewPubMedClient(client, cfg.UserAgent, cfg.PubMedAPIKey, cfg.PubMedMinInterval))
	}
	return r
}
