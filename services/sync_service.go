package services

import (
	"log"
	"sync"
	"time"

	"bodega-backend/storage"
	"bodega-backend/utils"

	"github.com/gofiber/websocket/v2"
)

// WSMessage representa un mensaje WebSocket hacia las pestañas del portal
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// StoragePayload es el payload de un cambio en el almacén durable. Las
// pestañas que lo reciben vuelven a consultar sus vistas derivadas y,
// si la clave es la del tema, reaplican el tema.
type StoragePayload struct {
	Key     string `json:"key"`
	Removed bool   `json:"removed,omitempty"`
}

// Client representa una pestaña conectada del portal
type Client struct {
	UserID   uint
	Conn     *websocket.Conn
	Send     chan WSMessage
	LastPing time.Time
}

// Hub administra las conexiones y reparte las notificaciones de cambio.
// Sustituye al evento "storage" entre pestañas del mismo origen.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan WSMessage
	mutex      sync.RWMutex
}

// NewHub crea un nuevo hub de sincronización
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan WSMessage),
	}
}

// Run ejecuta el bucle principal del hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			log.Printf("Pestaña del usuario %d conectada. Conexiones: %d", client.UserID, h.clientCount())

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()
			log.Printf("Pestaña del usuario %d desconectada. Conexiones: %d", client.UserID, h.clientCount())

		case message := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mutex.Unlock()
		}
	}
}

func (h *Hub) clientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// NotifyStorageChange difunde a todas las pestañas un cambio del
// almacén durable
func (h *Hub) NotifyStorageChange(event storage.Event) {
	h.broadcast <- WSMessage{
		Type:    "storage.update",
		Payload: StoragePayload{Key: event.Key, Removed: event.Removed},
	}
}

// HandleWebSocket atiende una conexión WebSocket entrante
func (h *Hub) HandleWebSocket(c *websocket.Conn) {
	// El token JWT llega por query string
	tokenString := c.Query("token")
	if tokenString == "" {
		c.Close()
		return
	}

	claims, err := utils.ValidateJWT(tokenString)
	if err != nil {
		c.Close()
		return
	}

	client := &Client{
		UserID:   claims.UserID,
		Conn:     c,
		Send:     make(chan WSMessage, 16),
		LastPing: time.Now(),
	}

	h.register <- client
	go h.writePump(client)
	h.readPump(client)
}

// writePump envía al cliente los mensajes encolados
func (h *Hub) writePump(client *Client) {
	for message := range client.Send {
		if err := client.Conn.WriteJSON(message); err != nil {
			break
		}
	}
	client.Conn.Close()
}

// readPump consume la conexión hasta que la pestaña se desconecta
func (h *Hub) readPump(client *Client) {
	defer func() {
		h.unregister <- client
	}()

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			return
		}
		client.LastPing = time.Now()
	}
}
