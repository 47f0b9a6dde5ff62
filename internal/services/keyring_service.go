package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/99designs/keyring"
)

const serviceName = "mdformat"

// KeyringService keeps plugin data in the OS keyring instead of SQLite, so the
// API key never lands in a plain file. It satisfies
// repositories.PluginDataRepository.
type KeyringService struct {
	ring keyring.Keyring
}

// OpenKeyring opens the platform keyring for mdformat.
func OpenKeyring() (keyring.Keyring, error) {
	return keyring.Open(keyring.Config{
		ServiceName:              serviceName,
		KeychainTrustApplication: true,
		LibSecretCollectionName:  serviceName,
		KWalletAppID:             serviceName,
		KWalletFolder:            serviceName,
		WinCredPrefix:            serviceName,
	})
}

func NewKeyringService(ring keyring.Keyring) *KeyringService {
	return &KeyringService{ring: ring}
}

func (s *KeyringService) Load(_ context.Context, pluginID string) ([]byte, error) {
	if strings.TrimSpace(pluginID) == "" {
		return nil, errors.New("plugin id is required")
	}
	item, err := s.ring.Get(pluginID)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("keyring get %s: %w", pluginID, err)
	}
	return item.Data, nil
}

func (s *KeyringService) Save(_ context.Context, pluginID string, data []byte) error {
	if strings.TrimSpace(pluginID) == "" {
		return errors.New("plugin id is required")
	}
	err := s.ring.Set(keyring.Item{
		Key:         pluginID,
		Data:        data,
		Label:       serviceName + " " + pluginID,
		Description: "Settings for " + pluginID + " used by mdformat",
	})
	if err != nil {
		return fmt.Errorf("keyring set %s: %w", pluginID, err)
	}
	return nil
}
