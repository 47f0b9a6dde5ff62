package client

import (
	"embed"
	"fmt"
	"strings"
)

// embeddedPrompts holds the built-in prompt templates so packaged executables
// can load them without needing access to the source tree.
//
//go:embed prompts/*.txt
var embeddedPrompts embed.FS

// loadPrompt returns prompts/<name>.txt without its trailing newlines.
func loadPrompt(name string) (string, error) {
	data, err := embeddedPrompts.ReadFile("prompts/" + name + ".txt")
	if err != nil {
		return "", fmt.Errorf("load prompt %s: %w", name, err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
