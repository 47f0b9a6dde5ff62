package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mdformat/internal/models"
)

// PluginDataRepository is the host's generic per-plugin data store. Load
// returns nil data and no error when the plugin has never saved anything.
type PluginDataRepository interface {
	Load(ctx context.Context, pluginID string) ([]byte, error)
	Save(ctx context.Context, pluginID string, data []byte) error
}

type pluginDataRepository struct {
	db *gorm.DB
}

func NewPluginDataRepository(db *gorm.DB) PluginDataRepository {
	return &pluginDataRepository{db: db}
}

func (r *pluginDataRepository) Load(ctx context.Context, pluginID string) ([]byte, error) {
	if strings.TrimSpace(pluginID) == "" {
		return nil, fmt.Errorf("plugin id is required")
	}
	var row models.PluginData
	if err := r.db.WithContext(ctx).Where("plugin_id = ?", pluginID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return []byte(row.Data), nil
}

func (r *pluginDataRepository) Save(ctx context.Context, pluginID string, data []byte) error {
	if strings.TrimSpace(pluginID) == "" {
		return fmt.Errorf("plugin id is required")
	}
	row := models.PluginData{
		PluginID: pluginID,
		Data:     string(data),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "plugin_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
}
