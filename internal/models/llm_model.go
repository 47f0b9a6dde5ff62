package models

// CustomModelOption is the list entry shown when the stored model id is not
// one of the presets. Selecting it never changes the stored model.
const CustomModelOption = "custom"

// LLMModel represents a single language model option exposed to the UI.
type LLMModel struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
}
