package mocks

import (
	"context"
	"sync"
)

// PluginDataRepositoryMock is an in-memory plugin data store. LoadFunc and
// SaveFunc override the default map-backed behaviour.
type PluginDataRepositoryMock struct {
	LoadFunc func(ctx context.Context, pluginID string) ([]byte, error)
	SaveFunc func(ctx context.Context, pluginID string, data []byte) error

	mu    sync.Mutex
	data  map[string][]byte
	saves int
}

func (m *PluginDataRepositoryMock) Load(ctx context.Context, pluginID string) ([]byte, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, pluginID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if d, ok := m.data[pluginID]; ok {
		return append([]byte(nil), d...), nil
	}
	return nil, nil
}

func (m *PluginDataRepositoryMock) Save(ctx context.Context, pluginID string, data []byte) error {
	m.mu.Lock()
	m.saves++
	m.mu.Unlock()
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, pluginID, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	m.data[pluginID] = append([]byte(nil), data...)
	return nil
}

// Stored returns what was last saved for pluginID.
func (m *PluginDataRepositoryMock) Stored(pluginID string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[pluginID]
}

// Saves counts Save calls, including ones handled by SaveFunc.
func (m *PluginDataRepositoryMock) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
