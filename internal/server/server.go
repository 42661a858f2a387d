package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/lox/quizshow/internal/avatar"
	"github.com/lox/quizshow/internal/game"
	"github.com/lox/quizshow/internal/registry"
)

// LobbyChannel carries game list updates to clients browsing for a game to
// join. Unlike the per-game channels its name is well known.
const LobbyChannel = "quizshow.chan.lobby"

// outbound is a broadcast waiting to be fanned out to subscribers.
type outbound struct {
	channel string
	msg     *Message
}

// Server accepts websocket clients and routes their requests into the game
// registry. Broadcasts flow through a single outbox so subscribers observe
// state updates in the order the mutations happened.
type Server struct {
	logger    *log.Logger
	cfg       *Config
	clock     quartz.Clock
	registry  *registry.Registry
	questions game.QuestionSource
	avatars   *avatar.Store
	upgrader  websocket.Upgrader

	mu          sync.RWMutex
	connections map[*Connection]bool

	register   chan *Connection
	unregister chan *Connection
	outbox     chan outbound
}

// New creates a server around an existing registry and question archive.
func New(cfg *Config, logger *log.Logger, clock quartz.Clock, reg *registry.Registry, questions game.QuestionSource, avatars *avatar.Store) *Server {
	return &Server{
		logger:    logger.WithPrefix("server"),
		cfg:       cfg,
		clock:     clock,
		registry:  reg,
		questions: questions,
		avatars:   avatars,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// For development, allow all origins
				// In production, implement proper origin checking
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		outbox:      make(chan outbound, 1024),
	}
}

// Handler returns the HTTP surface: the websocket endpoint, a health probe,
// per-game QR codes and the stored avatars.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/ws", s.handleWebSocket)
	r.Get("/healthz", s.handleHealth)
	r.Get("/games/{id}/qr", s.handleQR)

	prefix := s.cfg.Avatars.URLPrefix
	files := http.StripPrefix(prefix+"/", http.FileServer(http.Dir(s.avatars.Dir())))
	r.Get(prefix+"/*", files.ServeHTTP)

	return r
}

// Run owns the connection set and the broadcast outbox until ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("client connected", "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			delete(s.connections, conn)
			total := len(s.connections)
			s.mu.Unlock()
			_ = conn.Close() // Ignore close errors during unregistration
			s.logger.Info("client disconnected", "total", total)

		case out := <-s.outbox:
			s.deliver(out)

		case <-ctx.Done():
			s.mu.Lock()
			for conn := range s.connections {
				_ = conn.Close() // Ignore close errors during shutdown
			}
			s.connections = make(map[*Connection]bool)
			s.mu.Unlock()
			return ctx.Err()
		}
	}
}

// send queues broadcasts without blocking the caller.
func (s *Server) send(outs ...outbound) {
	for _, out := range outs {
		select {
		case s.outbox <- out:
		default:
			s.logger.Warn("broadcast queue full, dropping message", "channel", out.channel, "type", out.msg.Type)
		}
	}
}

// deliver fans one broadcast out to every subscribed connection.
func (s *Server) deliver(out outbound) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recipients := 0
	for conn := range s.connections {
		if !conn.subscribed(out.channel) {
			continue
		}
		if err := conn.Send(out.msg); err != nil {
			s.logger.Warn("failed to deliver broadcast", "channel", out.channel, "error", err)
			continue
		}
		recipients++
	}

	s.logger.Debug("delivered broadcast", "channel", out.channel, "type", out.msg.Type, "recipients", recipients)
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("failed to upgrade connection", "error", err)
		return
	}

	client := newConnection(conn, s)
	s.register <- client
	client.start()

	// Connection cleanup is handled by the connection itself
	go func() {
		<-client.ctx.Done()
		s.unregister <- client
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK")) // Ignore write errors for health check
}

// handleQR renders a QR code pointing at the game's own URL so the moderator
// can put it on a shared screen for players to scan.
func (s *Server) handleQR(w http.ResponseWriter, r *http.Request) {
	gameID, err := game.ParseGameID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid game id", http.StatusBadRequest)
		return
	}
	err = s.registry.View(gameID, func(*game.Game) error { return nil })
	if err != nil {
		if errors.Is(err, registry.ErrUnknownGame) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "failed to look up game", http.StatusInternalServerError)
		return
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	path := strings.TrimSuffix(r.URL.Path, "/qr")
	url := scheme + "://" + r.Host + path

	png, err := qrcode.Encode(url, qrcode.Medium, 320)
	if err != nil {
		s.logger.Error("failed to generate qr code", "game", gameID, "error", err)
		http.Error(w, "failed to generate qr code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// ingestAvatar stores an optional data URL upload, returning its serving URL.
func (s *Server) ingestAvatar(dataURL string) (string, error) {
	if dataURL == "" {
		return "", nil
	}
	return s.avatars.Ingest(dataURL)
}

// publishChat broadcasts a chat line. An empty playerName marks a system
// message.
func (s *Server) publishChat(channel, playerName, text string) {
	entry := ChatEntry{Player: playerName, Time: s.clock.Now(), Text: text}
	msg, err := NewMessage(MessageTypeChatMessage, ChatMessageData{Message: entry})
	if err != nil {
		return
	}
	msg.Channel = channel
	s.send(outbound{channel: channel, msg: msg})
}

// publishLobby broadcasts the current game list to lobby subscribers.
func (s *Server) publishLobby() {
	games, err := s.listGames()
	if err != nil {
		s.logger.Warn("failed to assemble lobby update", "error", err)
		return
	}
	msg, err := NewMessage(MessageTypeLobbyUpdate, GameListData{Games: games})
	if err != nil {
		return
	}
	msg.Channel = LobbyChannel
	s.send(outbound{channel: LobbyChannel, msg: msg})
}

func (s *Server) listGames() ([]GameInfo, error) {
	games := make([]GameInfo, 0)
	err := s.registry.ForEach(func(id game.GameID, g *game.Game) {
		games = append(games, GameInfo{
			ID:        id.String(),
			Moderator: g.ModeratorName(),
			Players:   g.PlayerNames(),
		})
	})
	if err != nil {
		return nil, err
	}
	return games, nil
}
