// internal/storage/factory.go
package storage

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/seawatch/seawatch/internal/config"
	"github.com/seawatch/seawatch/internal/database"
	"github.com/seawatch/seawatch/internal/storage/db"
	"github.com/seawatch/seawatch/internal/storage/memory"
)

// NewBackend creates a storage backend based on configuration.
func NewBackend(cfg config.StorageConfig, log zerolog.Logger) (Backend, error) {
	switch cfg.Type {
	case "db":
		return db.New(database.NewManager(log), log), nil
	case "memory":
		return memory.New(cfg, log), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
