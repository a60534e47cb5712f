package config

import (
	"fmt"
	"os"

	"work-timer/internal/repository/sqlite"
)

// CreateRepository creates a repository instance using the configuration system
func CreateRepository(config *Config) (sqlite.Repository, error) {
	dbPath := config.GetDatabasePath()

	repo, err := sqlite.NewWithConfig(dbPath, sqlite.Options{
		QueryTimeout:   config.GetQueryTimeout(),
		WriteTimeout:   config.GetWriteTimeout(),
		DirPermissions: os.FileMode(config.Database.DirPermissions),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (sqlite.Repository, error) {
	repo, err := sqlite.New(sqlite.MemoryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	return repo, nil
}
