package mocks

import (
	"context"
	"sync"

	"mdformat/internal/models"
)

// CompleterMock records Format calls.
type CompleterMock struct {
	FormatFunc func(ctx context.Context, settings models.Settings, body string) (string, error)

	mu     sync.Mutex
	bodies []string
}

func (m *CompleterMock) Format(ctx context.Context, settings models.Settings, body string) (string, error) {
	m.mu.Lock()
	m.bodies = append(m.bodies, body)
	m.mu.Unlock()
	if m.FormatFunc != nil {
		return m.FormatFunc(ctx, settings, body)
	}
	return body, nil
}

// Calls returns how many times Format ran.
func (m *CompleterMock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bodies)
}

// Bodies returns the bodies passed to Format in order.
func (m *CompleterMock) Bodies() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.bodies...)
}

// StaticSettings is a fixed SettingsProvider.
type StaticSettings models.Settings

func (s StaticSettings) Current() models.Settings {
	return models.Settings(s)
}
