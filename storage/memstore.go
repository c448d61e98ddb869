package storage

import "sync"

// MemStore es la implementación en memoria del Store. Se usa en tests y
// como modo degradado cuando el almacén durable no está disponible: la
// sesión sigue funcionando aunque sin persistencia.
type MemStore struct {
	notifier
	mutex   sync.RWMutex
	entries map[string]string
}

// NewMemStore crea un MemStore vacío
func NewMemStore() *MemStore {
	return &MemStore{entries: make(map[string]string)}
}

// Get devuelve el valor almacenado bajo la clave, si existe
func (s *MemStore) Get(key string) (string, bool, error) {
	s.mutex.RLock()
	value, ok := s.entries[key]
	s.mutex.RUnlock()
	return value, ok, nil
}

// Set guarda el valor bajo la clave
func (s *MemStore) Set(key, value string) error {
	s.mutex.Lock()
	s.entries[key] = value
	s.mutex.Unlock()

	s.notify(Event{Key: key, Value: value})
	return nil
}

// Remove elimina la entrada bajo la clave
func (s *MemStore) Remove(key string) error {
	s.mutex.Lock()
	delete(s.entries, key)
	s.mutex.Unlock()

	s.notify(Event{Key: key, Removed: true})
	return nil
}
