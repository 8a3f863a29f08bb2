// Package server implements a live view of running simulations. Frames
// are published as JSON over websockets and drawn by a small page
// served at the root.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/samuelfneumann/gridlearn/environment"
)

// Number of frames queued per client before further frames are dropped
const clientBuffer = 16

const shutdownWait = 2 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Server broadcasts frames to every connected browser. A Server is an
// experiment.Viewer; a slow client never blocks the caller of View,
// it simply misses frames.
type Server struct {
	ctx    context.Context
	addr   string
	router *mux.Router

	mu      sync.Mutex
	clients map[chan environment.Frame]struct{}
	latest  map[string]environment.Frame
}

// New returns a new Server listening on addr once Serve is called.
// Clients are disconnected when ctx is cancelled.
func New(ctx context.Context, addr string) *Server {
	s := &Server{
		ctx:     ctx,
		addr:    addr,
		clients: make(map[chan environment.Frame]struct{}),
		latest:  make(map[string]environment.Frame),
	}

	r := mux.NewRouter()
	r.HandleFunc("/", s.serveIndex).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.serveWebsocket)
	r.HandleFunc("/frames/{simulation}", s.serveFrame).
		Methods(http.MethodGet)
	s.router = r

	return s
}

// Handler returns the http.Handler serving the live view
func (s *Server) Handler() http.Handler {
	return s.router
}

// View records f as the latest frame of its simulation and sends it to
// all connected clients
func (s *Server) View(f environment.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest[f.Simulation] = f
	for ch := range s.clients {
		select {
		case ch <- f:
		default:
		}
	}
	return nil
}

// Serve listens for connections until ctx is cancelled
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			shutdownWait)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown: %v", err)
		}
	}()

	log.Printf("serving live view on %s", s.addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// subscribe registers a new client channel and returns it along with
// the latest frame of every simulation, sorted by simulation name
func (s *Server) subscribe() (chan environment.Frame, []environment.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan environment.Frame, clientBuffer)
	s.clients[ch] = struct{}{}

	frames := make([]environment.Frame, 0, len(s.latest))
	for _, f := range s.latest {
		frames = append(frames, f)
	}
	sort.Slice(frames, func(i, j int) bool {
		return frames[i].Simulation < frames[j].Simulation
	})
	return ch, frames
}

func (s *Server) unsubscribe(ch chan environment.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, ch)
}

func (s *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}

	frames, initial := s.subscribe()
	defer s.unsubscribe(frames)

	cli := newClient(conn, frames, initial)
	if err := cli.sync(r.Context(), s.ctx.Done()); err != nil {
		log.Println("client:", err)
	}
}

func (s *Server) serveFrame(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["simulation"]

	s.mu.Lock()
	f, ok := s.latest[name]
	s.mu.Unlock()

	if !ok {
		http.Error(w, fmt.Sprintf("no frame for simulation %q", name),
			http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(f); err != nil {
		log.Println("frame:", err)
	}
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(indexPage)); err != nil {
		log.Println("index:", err)
	}
}
