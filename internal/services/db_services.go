package services

import (
	"mdformat/internal/repositories"

	"github.com/99designs/keyring"
	"gorm.io/gorm"
)

// NewDbServices constructs the service container with settings persisted in db.
func NewDbServices(db *gorm.DB) (*Services, error) {
	return NewServices(repositories.NewPluginDataRepository(db))
}

// NewKeyringServices constructs the service container with settings persisted
// in ring.
func NewKeyringServices(ring keyring.Keyring) (*Services, error) {
	return NewServices(NewKeyringService(ring))
}
