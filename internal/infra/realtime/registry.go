package realtime

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"intellialert/internal/domain/dto"
	"intellialert/internal/infra/logger"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrRegistryClosed = errors.New("connection registry is closed")

// Registry holds the currently open dashboard connections in registration order.
//
// Broadcast enqueues without blocking; a client whose queue is full or whose write fails is
// dropped. Queues are only closed under the write lock, so a concurrent Broadcast never sends on
// a closed queue.
type Registry struct {
	Logger *logger.Logger

	mutex   sync.RWMutex
	clients []*Client
	closed  bool
}

func NewRegistry(logger *logger.Logger) *Registry {
	return &Registry{Logger: logger}
}

// Connect registers an upgraded connection and starts its write pump. The caller should then run
// ReadPump on the returned client.
func (r *Registry) Connect(conn Conn) (*Client, error) {
	client := &Client{
		ID:       uuid.NewString(),
		conn:     conn,
		send:     make(chan []byte, sendBufferSize),
		registry: r,
	}

	r.mutex.Lock()
	if r.closed {
		r.mutex.Unlock()
		conn.Close()
		return nil, ErrRegistryClosed
	}
	r.clients = append(r.clients, client)
	count := len(r.clients)
	r.mutex.Unlock()

	go client.writePump()

	r.Logger.Info("Websocket client connected", logrus.Fields{"client": client.ID, "clients": count})
	return client, nil
}

// Disconnect removes the client and closes its queue. Calling it more than once is harmless.
func (r *Registry) Disconnect(client *Client) {
	r.mutex.Lock()
	removed := r.remove(client)
	count := len(r.clients)
	r.mutex.Unlock()

	if removed {
		r.Logger.Info("Websocket client disconnected", logrus.Fields{"client": client.ID, "clients": count})
	}
}

// Broadcast delivers message to every registered client. It never fails: clients that cannot
// keep up are dropped.
func (r *Registry) Broadcast(message dto.BroadcastMessage) {
	data, err := json.Marshal(message)
	if err != nil {
		r.Logger.Error(fmt.Sprintf("Error marshaling broadcast message: %v", err))
		return
	}

	var stale []*Client

	r.mutex.RLock()
	for _, client := range r.clients {
		select {
		case client.send <- data:
		default:
			stale = append(stale, client)
		}
	}
	delivered := len(r.clients) - len(stale)
	r.mutex.RUnlock()

	for _, client := range stale {
		r.Logger.Warn("Dropping websocket client with full send buffer", logrus.Fields{"client": client.ID})
		r.Disconnect(client)
	}

	r.Logger.Debug("Broadcast message", logrus.Fields{"type": message.MessageType(), "delivered": delivered})
}

// Len reports how many clients are registered.
func (r *Registry) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.clients)
}

// Close disconnects every client and refuses new ones.
func (r *Registry) Close() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.closed = true
	for _, client := range r.clients {
		close(client.send)
	}
	r.clients = nil
}

func (r *Registry) dropAfterWriteError(client *Client, err error) {
	r.Logger.Warn("Websocket write failed", logrus.Fields{"client": client.ID, "error": err.Error()})
	r.Disconnect(client)
}

// remove must be called with the write lock held.
func (r *Registry) remove(client *Client) bool {
	i := slices.Index(r.clients, client)
	if i < 0 {
		return false
	}
	r.clients = slices.Delete(r.clients, i, i+1)
	close(client.send)
	return true
}
