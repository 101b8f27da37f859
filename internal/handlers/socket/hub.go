package socket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/19506jk/briscola-server/internal/services/game"
	"github.com/19506jk/briscola-server/internal/services/messaging"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64

	noSeat = -1
)

// EventGameReset tells clients the table was replaced and their seats are gone
const EventGameReset = "gameReset"

// Config holds the configuration for the hub
type Config struct {
	GameService      game.Service
	MessagingService messaging.Service

	// OriginAllowlist lists the origins allowed to connect. When empty only
	// same-origin requests and clients without an Origin header are accepted.
	OriginAllowlist []string

	Logger *zap.Logger
}

// Hub upgrades HTTP requests to WebSocket connections and translates their
// events into game service calls
type Hub struct {
	gameService      game.Service
	messagingService messaging.Service
	logger           *zap.Logger
	upgrader         websocket.Upgrader

	// tableMu serializes seat changes with table resets. Taken before mu.
	tableMu sync.Mutex

	mu      sync.RWMutex
	clients map[*client]struct{}
	seats   map[int]*client
	closed  bool

	wg sync.WaitGroup
}

type client struct {
	conn *websocket.Conn
	send chan []byte

	// seat is guarded by Hub.mu
	seat int
}

// NewHub creates a new hub
func NewHub(cfg *Config) (*Hub, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}
	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &Hub{
		gameService:      cfg.GameService,
		messagingService: cfg.MessagingService,
		logger:           logger,
		clients:          make(map[*client]struct{}),
		seats:            make(map[int]*client),
	}

	if len(cfg.OriginAllowlist) > 0 {
		allowed := make(map[string]bool, len(cfg.OriginAllowlist))
		for _, origin := range cfg.OriginAllowlist {
			if origin != "" {
				allowed[origin] = true
			}
		}
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowed[origin]
		}
	}

	return h, nil
}

// ServeHTTP upgrades the request and serves the connection until it closes
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", zap.String("remote_addr", r.RemoteAddr), zap.Error(err))
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		seat: noSeat,
	}
	if !h.register(c) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}

	h.logger.Debug("client connected", zap.String("remote_addr", r.RemoteAddr))

	go h.writePump(c)
	h.readPump(context.WithoutCancel(r.Context()), c)
}

// Close disconnects every client and waits for their goroutines. Seats are
// not released since the table goes away with the process.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	for c := range h.clients {
		_ = c.conn.Close()
	}
	h.mu.Unlock()

	h.wg.Wait()
}

// Reset replaces the table, forgets every seat assignment and tells the
// clients. Joins and disconnects wait until the reset is complete.
func (h *Hub) Reset(ctx context.Context) (*game.ResetGameOutput, error) {
	h.tableMu.Lock()
	defer h.tableMu.Unlock()

	output, err := h.gameService.ResetGame(ctx, &game.ResetGameInput{})
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	for seat, c := range h.seats {
		c.seat = noSeat
		delete(h.seats, seat)
	}
	h.mu.Unlock()

	h.broadcast(EventGameReset, nil)
	return output, nil
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	h.wg.Add(2)
	return true
}

func (h *Hub) unregister(ctx context.Context, c *client) {
	h.tableMu.Lock()
	defer h.tableMu.Unlock()

	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	close(c.send)

	seat := c.seat
	if seat != noSeat && h.seats[seat] == c {
		delete(h.seats, seat)
	}
	closed := h.closed
	h.mu.Unlock()

	if seat == noSeat || closed {
		return
	}

	output, err := h.gameService.LeaveGame(ctx, &game.LeaveGameInput{SeatIndex: seat})
	if err != nil {
		h.logger.Warn("failed to release seat", zap.Int("seat", seat), zap.Error(err))
		return
	}

	message, err := h.messagingService.GetExitMessage(ctx, &messaging.GetExitMessageInput{
		PlayerName:   output.PlayerName,
		RoundAborted: output.RoundAborted,
	})
	if err != nil {
		h.logger.Warn("failed to get exit message", zap.Error(err))
		return
	}

	h.broadcast(EventPlayerExit, message.Message)
	if output.RoundAborted {
		h.broadcast(EventRoundAborted, nil)
	}
}

func (h *Hub) seatOf(c *client) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return c.seat
}

func (h *Hub) assignSeat(c *client, seat int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.seat = seat
	h.seats[seat] = c
}

func (h *Hub) readPump(ctx context.Context, c *client) {
	defer h.wg.Done()
	defer h.unregister(ctx, c)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("client read failed", zap.Error(err))
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			h.sendError(ctx, c, "", err)
			continue
		}
		h.dispatch(ctx, c, &msg)
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
		h.wg.Done()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) encode(event string, data any) ([]byte, bool) {
	payload, err := json.Marshal(outbound{Event: event, Data: data})
	if err != nil {
		h.logger.Error("failed to encode event", zap.String("event", event), zap.Error(err))
		return nil, false
	}
	return payload, true
}

// enqueue drops the frame when the client is not keeping up. Callers hold
// at least a read lock so send is not closed underneath them.
func (h *Hub) enqueue(c *client, payload []byte) {
	select {
	case c.send <- payload:
	default:
		h.logger.Warn("dropping event for slow client", zap.Int("seat", c.seat))
	}
}

func (h *Hub) broadcast(event string, data any) {
	payload, ok := h.encode(event, data)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		h.enqueue(c, payload)
	}
}

func (h *Hub) sendTo(c *client, event string, data any) {
	payload, ok := h.encode(event, data)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c]; ok {
		h.enqueue(c, payload)
	}
}

func (h *Hub) sendToSeat(seat int, event string, data any) {
	payload, ok := h.encode(event, data)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if c, ok := h.seats[seat]; ok {
		h.enqueue(c, payload)
	}
}

func (h *Hub) sendError(ctx context.Context, c *client, event string, err error) {
	h.logger.Debug("event failed", zap.String("event", event), zap.Error(err))

	message := "Something went wrong, please try again."
	if output, msgErr := h.messagingService.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{Err: err}); msgErr == nil {
		message = output.Message
	}

	h.sendTo(c, EventGameError, GameErrorPayload{
		Event:   event,
		Message: message,
	})
}
