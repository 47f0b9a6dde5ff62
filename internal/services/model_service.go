package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"mdformat/internal/models"
)

// ModelCatalogService exposes the preset models offered by the settings form.
type ModelCatalogService interface {
	List() []models.LLMModel
	Has(key string) bool
}

type modelCatalogService struct {
	models []models.LLMModel
	index  map[string]struct{}
}

type rawModelFile struct {
	Models []models.LLMModel `json:"models"`
}

// NewModelCatalogService parses the embedded catalog. Entries keep file
// order; blank or duplicate keys are dropped.
func NewModelCatalogService(data []byte) (ModelCatalogService, error) {
	var parsed rawModelFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse models asset: %w", err)
	}

	s := &modelCatalogService{index: make(map[string]struct{})}
	for _, mdl := range parsed.Models {
		key := strings.TrimSpace(mdl.Key)
		if key == "" || key == models.CustomModelOption {
			continue
		}
		if _, dup := s.index[key]; dup {
			continue
		}
		name := strings.TrimSpace(mdl.DisplayName)
		if name == "" {
			name = key
		}
		s.index[key] = struct{}{}
		s.models = append(s.models, models.LLMModel{Key: key, DisplayName: name})
	}
	return s, nil
}

func (s *modelCatalogService) List() []models.LLMModel {
	out := make([]models.LLMModel, len(s.models))
	copy(out, s.models)
	return out
}

func (s *modelCatalogService) Has(key string) bool {
	_, ok := s.index[key]
	return ok
}
