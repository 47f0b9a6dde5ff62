package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"mdformat/internal/models"
	"mdformat/internal/repositories"
)

// PluginID is the key the settings document is stored under.
const PluginID = "format-markdown"

// SettingsService owns the in-memory settings and writes them back to the
// plugin data store after every change.
type SettingsService interface {
	Load(ctx context.Context) (models.Settings, error)
	Save(ctx context.Context) error
	Current() models.Settings

	SetAPIKey(ctx context.Context, apiKey string) error
	SetAPIURL(ctx context.Context, apiURL string) error
	SetModel(ctx context.Context, model string) error

	ModelOptions() []models.LLMModel
	SelectedOption() string
	SelectModelOption(ctx context.Context, key string) error
}

type settingsService struct {
	store    repositories.PluginDataRepository
	catalog  ModelCatalogService
	settings models.Settings
}

func NewSettingsService(store repositories.PluginDataRepository, catalog ModelCatalogService) SettingsService {
	return &settingsService{
		store:    store,
		catalog:  catalog,
		settings: models.DefaultSettings(),
	}
}

// Load merges the stored document over the defaults. Keys missing from the
// stored JSON keep their default and unknown keys are ignored.
func (s *settingsService) Load(ctx context.Context) (models.Settings, error) {
	settings := models.DefaultSettings()

	data, err := s.store.Load(ctx, PluginID)
	if err != nil {
		return settings, fmt.Errorf("load settings: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &settings); err != nil {
			return models.DefaultSettings(), fmt.Errorf("decode settings: %w", err)
		}
	}

	s.settings = settings
	return settings, nil
}

func (s *settingsService) Save(ctx context.Context) error {
	data, err := json.Marshal(s.settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.store.Save(ctx, PluginID, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func (s *settingsService) Current() models.Settings {
	return s.settings
}

func (s *settingsService) SetAPIKey(ctx context.Context, apiKey string) error {
	s.settings.APIKey = apiKey
	return s.Save(ctx)
}

func (s *settingsService) SetAPIURL(ctx context.Context, apiURL string) error {
	s.settings.APIURL = apiURL
	return s.Save(ctx)
}

// SetModel stores a free-text model id, trimmed.
func (s *settingsService) SetModel(ctx context.Context, model string) error {
	s.settings.Model = strings.TrimSpace(model)
	return s.Save(ctx)
}

// ModelOptions lists the presets followed by the custom sentinel.
func (s *settingsService) ModelOptions() []models.LLMModel {
	opts := s.catalog.List()
	return append(opts, models.LLMModel{
		Key:         models.CustomModelOption,
		DisplayName: "Custom (use the field below)",
	})
}

// SelectedOption is the list entry matching the stored model, or the custom
// sentinel when the model is not a preset.
func (s *settingsService) SelectedOption() string {
	if s.catalog.Has(s.settings.Model) {
		return s.settings.Model
	}
	return models.CustomModelOption
}

// SelectModelOption applies a list pick. Picking the sentinel leaves the
// stored model alone.
func (s *settingsService) SelectModelOption(ctx context.Context, key string) error {
	if key == models.CustomModelOption {
		return nil
	}
	if !s.catalog.Has(key) {
		return fmt.Errorf("model %s not found", key)
	}
	return s.SetModel(ctx, key)
}
