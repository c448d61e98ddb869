package models

import "time"

// StorageEntry representa una entrada clave/valor del almacén durable.
// El valor siempre es un blob JSON serializado.
type StorageEntry struct {
	Key       string    `json:"key" gorm:"primaryKey;size:128"`
	Value     string    `json:"value" gorm:"type:text"`
	UpdatedAt time.Time `json:"updated_at"`
}
