package storage

import (
	"errors"

	"bodega-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore persiste las entradas clave/valor en la base de datos.
// Es la implementación durable del Store: sobrevive reinicios y es
// compartida por todas las pestañas conectadas al portal.
type GormStore struct {
	notifier
	db *gorm.DB
}

// NewGormStore crea un nuevo GormStore sobre la conexión dada
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Get devuelve el valor almacenado bajo la clave, si existe
func (s *GormStore) Get(key string) (string, bool, error) {
	var entry models.StorageEntry
	if err := s.db.First(&entry, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return entry.Value, true, nil
}

// Set guarda el valor bajo la clave; el último escritor gana
func (s *GormStore) Set(key, value string) error {
	entry := models.StorageEntry{Key: key, Value: value}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return err
	}

	s.notify(Event{Key: key, Value: value})
	return nil
}

// Remove elimina la entrada bajo la clave
func (s *GormStore) Remove(key string) error {
	if err := s.db.Delete(&models.StorageEntry{}, "key = ?", key).Error; err != nil {
		return err
	}

	s.notify(Event{Key: key, Removed: true})
	return nil
}
