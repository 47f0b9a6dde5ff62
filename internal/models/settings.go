package models

const (
	DefaultAPIURL = "https://openrouter.ai/api/v1/chat/completions"
	DefaultModel  = "anthropic/claude-3.7-sonnet"
)

// Settings is the persisted plugin configuration. The JSON shape is the
// stored format and must stay at exactly these three keys.
type Settings struct {
	APIKey string `json:"apiKey"`
	APIURL string `json:"apiUrl"`
	Model  string `json:"model"`
}

// DefaultSettings returns the compiled-in defaults that stored values are
// merged over on load.
func DefaultSettings() Settings {
	return Settings{
		APIKey: "",
		APIURL: DefaultAPIURL,
		Model:  DefaultModel,
	}
}
