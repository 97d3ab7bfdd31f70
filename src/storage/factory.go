package storage

import (
	"fmt"

	"sales-forecast/src/interfaces"
	"sales-forecast/src/logger"
	"sales-forecast/src/models"
)

// NewReportStore builds the configured result sink. It returns nil for
// db_type "none".
func NewReportStore(cfg *models.MConfig, log *logger.Logger) (interfaces.IReportStore, error) {
	switch cfg.Storage.DBType {
	case "", "none":
		return nil, nil
	case "sqlite":
		store, err := NewSQLiteReportStore(cfg, log)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "postgres":
		store, err := NewPostgresReportStore(cfg, log)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown database type %q", cfg.Storage.DBType)
}
