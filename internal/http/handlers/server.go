package handlers

import (
	"github.com/bloomnext/pos-inventory/internal/auth"
	"github.com/bloomnext/pos-inventory/internal/cache"
	"github.com/bloomnext/pos-inventory/internal/repo"
)

// Handler carries the repositories and services the HTTP layer needs. All
// dependencies are injected at construction; there is no package state.
type Handler struct {
	products  repo.ProductRepository
	movements repo.MovementRepository
	stock     repo.StockRepository
	users     repo.UserRepository
	metrics   repo.MetricsRepository
	tokens    *auth.Manager
	refresh   auth.RefreshStore
	lookup    *cache.LookupCache
}

// Deps groups the handler dependencies. Lookup may be nil when no redis is
// available; the scan path then always hits the catalog store.
type Deps struct {
	Products  repo.ProductRepository
	Movements repo.MovementRepository
	Stock     repo.StockRepository
	Users     repo.UserRepository
	Metrics   repo.MetricsRepository
	Tokens    *auth.Manager
	Refresh   auth.RefreshStore
	Lookup    *cache.LookupCache
}

func New(d Deps) *Handler {
	return &Handler{
		products:  d.Products,
		movements: d.Movements,
		stock:     d.Stock,
		users:     d.Users,
		metrics:   d.Metrics,
		tokens:    d.Tokens,
		refresh:   d.Refresh,
		lookup:    d.Lookup,
	}
}

// Tokens exposes the token manager for middleware wiring.
func (h *Handler) Tokens() *auth.Manager {
	return h.tokens
}
