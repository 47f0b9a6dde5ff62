// Package assets embeds the preset model catalog shown in the settings form.
package assets

import _ "embed"

// ModelsData is models.json: {"models":[{"key":..., "displayName":...}]}, in
// display order.
//
//go:embed models.json
var ModelsData []byte
