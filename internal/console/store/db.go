package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sahabhq/console/internal/common/config"
)

// DBStore implements the Store interface using a database.
type DBStore struct {
	logger *zap.Logger
	db     *gorm.DB
}

var _ Store = (*DBStore)(nil)

// NewDBStore opens the preferences database and migrates the schema.
func NewDBStore(logger *zap.Logger, cfg *config.DatabaseConfig) (*DBStore, error) {
	logger = logger.Named("prefs.store")

	var dialector gorm.Dialector
	switch cfg.Type {
	case "postgres":
		dialector = postgres.Open(cfg.GetDSN())
	case "mysql":
		dialector = mysql.Open(cfg.GetDSN())
	case "sqlite":
		dialector = sqlite.Open(cfg.GetDSN())
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&Preference{}); err != nil {
		return nil, err
	}

	logger.Info("preferences store ready", zap.String("type", cfg.Type))
	return &DBStore{
		logger: logger,
		db:     db,
	}, nil
}

// Get implements Store.Get
func (s *DBStore) Get(ctx context.Context, username, key string) (string, error) {
	var row Preference
	result := s.db.WithContext(ctx).
		Where("username = ? AND pref_key = ?", username, key).
		First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", ErrPreferenceNotFound
		}
		return "", result.Error
	}
	return row.Value, nil
}

// List implements Store.List
func (s *DBStore) List(ctx context.Context, username string) (map[string]string, error) {
	var rows []Preference
	result := s.db.WithContext(ctx).Where("username = ?", username).Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	prefs := make(map[string]string, len(rows))
	for _, row := range rows {
		prefs[row.Key] = row.Value
	}
	return prefs, nil
}

// Put implements Store.Put
func (s *DBStore) Put(ctx context.Context, username, key, value string) error {
	var row Preference
	result := s.db.WithContext(ctx).
		Where("username = ? AND pref_key = ?", username, key).
		First(&row)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}
		row = Preference{Username: username, Key: key, Value: value}
		return s.db.WithContext(ctx).Create(&row).Error
	}

	row.Value = value
	return s.db.WithContext(ctx).Save(&row).Error
}

// Delete implements Store.Delete
func (s *DBStore) Delete(ctx context.Context, username, key string) error {
	return s.db.WithContext(ctx).
		Where("username = ? AND pref_key = ?", username, key).
		Delete(&Preference{}).Error
}
