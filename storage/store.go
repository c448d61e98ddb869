package storage

import "sync"

// Event describe un cambio en el almacén durable. Equivale al evento
// "storage" que el navegador dispara hacia las demás pestañas.
type Event struct {
	Key     string `json:"key"`
	Value   string `json:"value,omitempty"`
	Removed bool   `json:"removed,omitempty"`
}

// Store es el contrato del almacén clave/valor durable: blobs JSON por
// clave, último escritor gana, con notificación de cambios para que los
// consumidores re-rendericen sus vistas derivadas.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
	Subscribe(fn func(Event)) (unsubscribe func())
}

// notifier implementa el registro de suscriptores compartido por las
// implementaciones del Store.
type notifier struct {
	mutex       sync.RWMutex
	subscribers map[int]func(Event)
	nextID      int
}

func (n *notifier) Subscribe(fn func(Event)) func() {
	n.mutex.Lock()
	if n.subscribers == nil {
		n.subscribers = make(map[int]func(Event))
	}
	id := n.nextID
	n.nextID++
	n.subscribers[id] = fn
	n.mutex.Unlock()

	return func() {
		n.mutex.Lock()
		delete(n.subscribers, id)
		n.mutex.Unlock()
	}
}

func (n *notifier) notify(event Event) {
	n.mutex.RLock()
	fns := make([]func(Event), 0, len(n.subscribers))
	for _, fn := range n.subscribers {
		fns = append(fns, fn)
	}
	n.mutex.RUnlock()

	for _, fn := range fns {
		fn(event)
	}
}
