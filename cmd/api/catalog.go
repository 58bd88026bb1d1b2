package main

import (
	"fmt"

	"github.com/angelmondragon/sweetshop-backend/internal/catalog"
	"github.com/angelmondragon/sweetshop-backend/internal/sweets"
	"github.com/angelmondragon/sweetshop-backend/pkg/config"
)

// buildCatalogSource returns the configured source and a release func.
func buildCatalogSource(cfg config.CatalogConfig, repo *sweets.Repository) (catalog.Source, func(), error) {
	noop := func() {}
	switch cfg.SourceKind() {
	case config.CatalogSourceDB:
		src, err := catalog.NewRepositorySource(repo)
		return src, noop, err
	case config.CatalogSourceMemory:
		return catalog.NewMemorySource(catalog.MemoryOptions{
			ListLatency: cfg.MockLatency,
			GetLatency:  cfg.MockGetLatency,
		}), noop, nil
	case config.CatalogSourceRemote:
		src, err := catalog.NewHTTPSource(catalog.HTTPOptions{
			BaseURL: cfg.RemoteBaseURL,
			Token:   cfg.RemoteToken,
			Timeout: cfg.RemoteTimeout,
		})
		if err != nil {
			return nil, noop, err
		}
		return src, func() { _ = src.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unsupported catalog source %q", cfg.Source)
	}
}
