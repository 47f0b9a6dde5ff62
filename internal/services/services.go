package services

import (
	"mdformat/internal/assets"
	"mdformat/internal/repositories"
)

// Services aggregates the domain services used by the command handlers.
type Services struct {
	Models   ModelCatalogService
	Settings SettingsService
	Git      *GitService
}

// NewServices wires the services on top of a plugin data store.
func NewServices(store repositories.PluginDataRepository) (*Services, error) {
	catalog, err := NewModelCatalogService(assets.ModelsData)
	if err != nil {
		return nil, err
	}
	return &Services{
		Models:   catalog,
		Settings: NewSettingsService(store, catalog),
		Git:      NewGitService(),
	}, nil
}
