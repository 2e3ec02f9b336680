// Command holdem-serve runs a table and serves it over a websocket: every
// state transition is pushed to connected clients as a JSON snapshot, and the
// human seat is driven by inbound action messages.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-table/internal/game"
	"github.com/lox/holdem-table/internal/randutil"
)

type CLI struct {
	Listen string `short:"l" help:"Address to listen on" default:":8080"`
	Config string `short:"c" help:"Path to the table config file" default:"holdem.hcl" type:"path"`
	Seed   int64  `help:"RNG seed for reproducible games (0 seeds from the clock)"`
	Debug  bool   `short:"d" help:"Enable debug logging"`
}

// actionMessage is the inbound wire format for human actions.
type actionMessage struct {
	Action string `json:"action"`
	Amount int    `json:"amount"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "serve",
	})
	if cli.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := game.LoadConfig(cli.Config)
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid config", "error", err)
	}

	seed := cli.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	hub := newHub(logger)
	table := game.New(cfg,
		game.WithLogger(logger.WithPrefix("table")),
		game.WithRand(randutil.New(seed)),
		game.WithObserver(hub.broadcast),
	)
	hub.table = table

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.handleWS)

	srv := &http.Server{
		Addr:    cli.Listen,
		Handler: mux,
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, runCtx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		logger.Info("Listening", "addr", cli.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-runCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	table.Start()

	if err := g.Wait(); err != nil {
		logger.Fatal("Server error", "error", err)
	}
	ctx.Exit(0)
}

// hub fans table snapshots out to connected websocket clients and feeds
// inbound action messages to the human seat.
type hub struct {
	logger   *log.Logger
	table    *game.Game
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]chan []byte
}

func newHub(logger *log.Logger) *hub {
	return &hub{
		logger: logger.WithPrefix("hub"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]chan []byte),
	}
}

func (h *hub) broadcast(snap game.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		h.logger.Error("Failed to marshal snapshot", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, ch := range h.clients {
		select {
		case ch <- data:
		default:
			// Slow consumer, drop the connection rather than the table.
			h.logger.Warn("Dropping slow client", "addr", conn.RemoteAddr())
			close(ch)
			delete(h.clients, conn)
		}
	}
}

func (h *hub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Upgrade failed", "error", err)
		return
	}
	h.logger.Info("Client connected", "addr", conn.RemoteAddr())

	send := make(chan []byte, 16)
	h.mu.Lock()
	h.clients[conn] = send
	h.mu.Unlock()

	// Send the current state immediately so late joiners see the table.
	snap := h.table.Snapshot()
	if data, err := json.Marshal(snap); err == nil {
		select {
		case send <- data:
		default:
		}
	}

	go h.writePump(conn, send)
	h.readPump(conn)
}

func (h *hub) writePump(conn *websocket.Conn, send chan []byte) {
	for data := range send {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

func (h *hub) readPump(conn *websocket.Conn) {
	defer func() {
		h.mu.Lock()
		if ch, ok := h.clients[conn]; ok {
			close(ch)
			delete(h.clients, conn)
		}
		h.mu.Unlock()
		conn.Close()
		h.logger.Info("Client disconnected", "addr", conn.RemoteAddr())
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg actionMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.logger.Warn("Bad message", "error", err)
			continue
		}

		action, err := game.ParseAction(msg.Action)
		if err != nil {
			h.logger.Warn("Bad action", "error", err)
			continue
		}

		if !h.table.SubmitHumanAction(action, msg.Amount) {
			h.logger.Debug("Action rejected", "action", msg.Action, "amount", msg.Amount)
		}
	}
}
