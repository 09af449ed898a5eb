// Package watch provides a file watcher that serves a parsed graph as JSON via HTTP and pushes
// the result of re-parsing the file to WebSocket clients whenever it changes.
package watch

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/teleivo/dotgraph"
)

// Config configures a Watcher.
type Config struct {
	File    string           // graph file to serve
	Port    string           // HTTP server port (use "0" for a random available port)
	Variant dotgraph.Variant // grammar variant used to parse File
	Debug   bool             // enable debug logging
	Stdout  io.Writer        // output for status messages
	Stderr  io.Writer        // output for error logging
}

// Watcher watches a graph file for changes and serves the parsed graph via HTTP.
type Watcher struct {
	file     string
	variant  dotgraph.Variant
	stdout   io.Writer
	logger   *slog.Logger
	server   *http.Server
	upgrader websocket.Upgrader
	shutdown chan struct{}
	closed   sync.Once
	clients  sync.WaitGroup

	pollInterval time.Duration
}

// Result is the JSON document describing the outcome of parsing the watched file. Exactly one of
// Graph and Error is set.
type Result struct {
	Graph *dotgraph.Graph `json:"graph,omitempty"`
	Error *Error          `json:"error,omitempty"`
}

// Error describes why the watched file could not be parsed. Line and Column are set for syntax
// errors.
type Error struct {
	Msg    string `json:"message"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

//go:embed index.html
var indexHTML []byte

// New creates a Watcher that serves the given graph file on the specified port.
func New(cfg Config) (*Watcher, error) {
	_, err := os.Stat(cfg.File)
	if err != nil {
		return nil, fmt.Errorf("file error: %v", err)
	}
	addr, err := netip.ParseAddrPort("127.0.0.1:" + cfg.Port)
	if err != nil {
		return nil, fmt.Errorf("invalid port %q, must be in range 1-65535", cfg.Port)
	}

	handler := http.NewServeMux()
	server := http.Server{
		Addr:        addr.String(),
		Handler:     handler,
		ReadTimeout: 3 * time.Second,
		IdleTimeout: 120 * time.Second,
	}
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cfg.Stderr, &slog.HandlerOptions{Level: level}))
	wa := &Watcher{
		file:         cfg.File,
		variant:      cfg.Variant,
		stdout:       cfg.Stdout,
		logger:       logger,
		server:       &server,
		shutdown:     make(chan struct{}),
		pollInterval: 500 * time.Millisecond,
	}
	// only served on localhost
	wa.upgrader.CheckOrigin = func(*http.Request) bool { return true }
	handler.HandleFunc("GET /", wa.handleIndex)
	handler.HandleFunc("GET /events", wa.handleEvents)
	handler.HandleFunc("GET /graph", wa.handleGraph)
	handler.HandleFunc("GET /graph.json", wa.handleGraph)
	return wa, nil
}

// Handler returns the HTTP handler serving the graph.
func (wa *Watcher) Handler() http.Handler {
	return wa.server.Handler
}

// Watch starts the HTTP server and blocks until the context is cancelled.
func (wa *Watcher) Watch(ctx context.Context) error {
	ln, err := net.Listen("tcp", wa.server.Addr)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(wa.stdout, "watching on http://%s\n", ln.Addr())

	go func() {
		<-ctx.Done()
		wa.Close()
		ctxTimeout, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()
		if err := wa.server.Shutdown(ctxTimeout); err != nil && !errors.Is(err, context.Canceled) {
			wa.logger.Error("failed to shutdown", "error", err)
		}
	}()

	if err := wa.server.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close notifies connected clients of the shutdown and waits for their connections to close.
func (wa *Watcher) Close() {
	wa.closed.Do(func() {
		close(wa.shutdown)
		wa.logger.Debug("shutting down, notifying clients")
	})
	wa.clients.Wait() // no timeout: localhost flushes complete nearly instantly
}

func (wa *Watcher) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	_, err := w.Write(indexHTML)
	if err != nil {
		wa.logger.Error("failed to write index.html", "error", err)
	}
}

func (wa *Watcher) handleGraph(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	result := wa.parse()
	if result.Error != nil && result.Error.Line == 0 {
		w.WriteHeader(http.StatusInternalServerError)
	}
	if err := json.NewEncoder(w).Encode(result); err != nil {
		wa.logger.Error("failed to write graph", "error", err)
	}
}

func (wa *Watcher) handleEvents(w http.ResponseWriter, r *http.Request) {
	select {
	case <-wa.shutdown:
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	default:
	}
	wa.clients.Add(1)
	defer wa.clients.Done()

	conn, err := wa.upgrader.Upgrade(w, r, nil)
	if err != nil {
		wa.logger.Error("failed to upgrade connection", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	wa.logger.Debug("client connected")

	// clients only send control frames, read them until the connection breaks
	disconnected := make(chan struct{})
	go func() {
		defer close(disconnected)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	pollTicker := time.NewTicker(wa.pollInterval)
	defer pollTicker.Stop()

	var lastMod time.Time
	lastSize := int64(-1)

	for {
		stat, err := os.Stat(wa.file)
		if err != nil {
			wa.logger.Error("stat failed", "error", err)
			return
		}
		if !stat.ModTime().Equal(lastMod) || stat.Size() != lastSize {
			wa.logger.Debug("change detected", "modtime", stat.ModTime(), "size", stat.Size())
			if err := conn.WriteJSON(wa.parse()); err != nil {
				wa.logger.Debug("failed to send graph", "error", err)
				return
			}
		}
		lastMod = stat.ModTime()
		lastSize = stat.Size()

		select {
		case <-disconnected:
			wa.logger.Debug("client disconnected")
			return
		case <-wa.shutdown:
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutdown")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
			wa.logger.Debug("closing connection to client")
			return
		case <-pollTicker.C:
		}
	}
}

// parse parses the watched file.
func (wa *Watcher) parse() Result {
	g, err := dotgraph.ParseFile(wa.file, wa.variant)
	if err == nil {
		return Result{Graph: g}
	}

	var syntaxErr *dotgraph.SyntaxError
	if errors.As(err, &syntaxErr) {
		return Result{Error: &Error{
			Msg:    err.Error(),
			Line:   syntaxErr.Token.Start.Line,
			Column: syntaxErr.Token.Start.Column,
		}}
	}
	wa.logger.Error("failed to parse", "file", wa.file, "error", err)
	return Result{Error: &Error{Msg: err.Error()}}
}
