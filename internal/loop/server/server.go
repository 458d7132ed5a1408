// Package server tracks the terminal sessions connected to one process: who
// is online, the best finished runs, and a graceful shutdown broadcast.
//
// Every session plays its own independent game; the hub only sees finished runs.
package server

import (
	"io"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/dodgefall/internal/loop"
	"github.com/tomz197/dodgefall/internal/loop/config"
)

// GameServer is the interface clients use to communicate with the hub.
// Decouples the Client from the concrete Hub, enabling testing.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	ReportRun(clientID int, result loop.RunResult)
	GetSnapshot() *LobbySnapshot
}

// ClientHandle represents a client's connection to the hub.
type ClientHandle struct {
	ID       int
	Username string           // Display name for this client
	EventsCh chan ClientEvent // Events sent to client
	JoinedAt time.Time
	Best     int // Best score this session
	Runs     int
}

// ClientEvent represents an event sent from the hub to a client.
type ClientEvent struct {
	Type  ClientEventType
	Entry ScoreEntry // For EventNewLeader
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
	EventNewLeader                      // Someone took the top spot
)

// ScoreEntry is one leaderboard line.
type ScoreEntry struct {
	Name    string
	Score   int
	Variant string
	At      time.Time
}

// LobbySnapshot is the shared view every client draws from.
type LobbySnapshot struct {
	Players int
	Top     []ScoreEntry
}

// Hub manages connected clients and the session leaderboard.
type Hub struct {
	mu           sync.RWMutex
	clients      map[int]*ClientHandle
	nextClientID int
	board        []ScoreEntry
	size         int
	snapshot     atomic.Pointer[LobbySnapshot]
	logger       *log.Logger
	now          func() time.Time
}

// Compile-time check that Hub implements GameServer.
var _ GameServer = (*Hub)(nil)

// NewHub creates a hub keeping the best size runs. A nil logger discards.
func NewHub(logger *log.Logger, size int) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if size <= 0 {
		size = config.LeaderboardSize
	}
	h := &Hub{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		size:         size,
		logger:       logger,
		now:          time.Now,
	}
	h.snapshot.Store(&LobbySnapshot{})
	return h
}

// RegisterClient registers a new client with the given username and returns its handle.
func (h *Hub) RegisterClient(username string) *ClientHandle {
	if len(username) > config.MaxUsernameLength {
		username = username[:config.MaxUsernameLength]
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	handle := &ClientHandle{
		ID:       h.nextClientID,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
		JoinedAt: h.now(),
	}
	h.nextClientID++
	h.clients[handle.ID] = handle
	h.publishLocked()

	h.logger.Info("client joined", "id", handle.ID, "user", username, "players", len(h.clients))
	return handle
}

// UnregisterClient removes a client and closes its event channel.
func (h *Hub) UnregisterClient(clientID int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	handle, ok := h.clients[clientID]
	if !ok {
		return
	}
	close(handle.EventsCh)
	delete(h.clients, clientID)
	h.publishLocked()

	h.logger.Info("client left", "id", clientID, "user", handle.Username, "runs", handle.Runs, "best", handle.Best)
}

// Players returns the number of connected clients.
func (h *Hub) Players() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ReportRun records a finished run. A run that takes first place is
// announced to every other client.
func (h *Hub) ReportRun(clientID int, result loop.RunResult) {
	h.mu.Lock()
	defer h.mu.Unlock()

	handle, ok := h.clients[clientID]
	if !ok {
		return
	}
	handle.Runs++
	if result.Score > handle.Best {
		handle.Best = result.Score
	}

	entry := ScoreEntry{
		Name:    handle.Username,
		Score:   result.Score,
		Variant: result.Variant,
		At:      h.now(),
	}
	rank := h.insertLocked(entry)
	if rank < 0 {
		return
	}
	h.publishLocked()

	h.logger.Debug("leaderboard entry", "user", entry.Name, "score", entry.Score, "rank", rank+1)

	if rank != 0 || entry.Score == 0 {
		return
	}
	for id, other := range h.clients {
		if id == clientID {
			continue
		}
		select {
		case other.EventsCh <- ClientEvent{Type: EventNewLeader, Entry: entry}:
		default:
		}
	}
}

// insertLocked places entry on the board and returns its rank, or -1 if it
// did not make the cut. Ties keep the earlier run ahead.
func (h *Hub) insertLocked(entry ScoreEntry) int {
	rank := sort.Search(len(h.board), func(i int) bool {
		return h.board[i].Score < entry.Score
	})
	if rank >= h.size {
		return -1
	}
	h.board = append(h.board, ScoreEntry{})
	copy(h.board[rank+1:], h.board[rank:])
	h.board[rank] = entry
	if len(h.board) > h.size {
		h.board = h.board[:h.size]
	}
	return rank
}

// TopScores returns a copy of the leaderboard, best first.
func (h *Hub) TopScores() []ScoreEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]ScoreEntry(nil), h.board...)
}

// GetSnapshot returns the current lobby snapshot. Safe to call without locks.
func (h *Hub) GetSnapshot() *LobbySnapshot {
	return h.snapshot.Load()
}

func (h *Hub) publishLocked() {
	h.snapshot.Store(&LobbySnapshot{
		Players: len(h.clients),
		Top:     append([]ScoreEntry(nil), h.board...),
	})
}

// Shutdown gracefully shuts down the hub by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
func (h *Hub) Shutdown(timeout time.Duration) {
	h.mu.RLock()
	for _, handle := range h.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	h.mu.RUnlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if h.Players() == 0 {
			return
		}
		select {
		case <-deadline:
			h.logger.Warn("shutdown timed out", "remaining", h.Players())
			return
		case <-ticker.C:
		}
	}
}
