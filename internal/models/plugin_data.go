package models

import "time"

// PluginData is one row of the generic per-plugin key/value store.
// Data holds the plugin's JSON document as written by the plugin.
type PluginData struct {
	PluginID  string `gorm:"primaryKey;size:120"`
	Data      string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}
