// Package stream pushes engine snapshots to WebSocket clients.
package stream

import (
	"net/http"
	"time"

	marketengine "token-pulse-go/internal/market-engine"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait    = 5 * time.Second
	pingInterval = 30 * time.Second
	bufferSize   = 16
)

type SnapshotSource interface {
	Snapshot() marketengine.Snapshot
	Subscribe(buffer int) (<-chan marketengine.Snapshot, func())
}

type Message struct {
	Type string                `json:"type"`
	Data marketengine.Snapshot `json:"data"`
}

type Hub struct {
	source       SnapshotSource
	logger       logrus.FieldLogger
	upgrader     websocket.Upgrader
	pingInterval time.Duration
}

func NewHub(source SnapshotSource, logger logrus.FieldLogger) *Hub {
	return &Hub{
		source: source,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pingInterval: pingInterval,
	}
}

// Serve upgrades the request and writes the current snapshot followed by
// every published one until the client goes away.
func (h *Hub) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithError(err).Warn("[Stream] Upgrade failed")
		return
	}
	defer conn.Close()

	log := h.logger.WithField("conn", uuid.NewString())
	log.Info("[Stream] Client connected")

	updates, unsubscribe := h.source.Subscribe(bufferSize)
	defer unsubscribe()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	if err := h.write(conn, Message{Type: "snapshot", Data: h.source.Snapshot()}); err != nil {
		log.WithError(err).Warn("[Stream] Send failed")
		return
	}

	ping := time.NewTicker(h.pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-closed:
			log.Info("[Stream] Client disconnected")
			return
		case <-c.Request.Context().Done():
			return
		case snapshot, open := <-updates:
			if !open {
				return
			}
			if err := h.write(conn, Message{Type: "snapshot", Data: snapshot}); err != nil {
				log.WithError(err).Warn("[Stream] Send failed")
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				log.WithError(err).Warn("[Stream] Ping failed")
				return
			}
		}
	}
}

func (h *Hub) write(conn *websocket.Conn, msg Message) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}
