package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/rybkr/branchvista/internal/config"
	"github.com/rybkr/branchvista/internal/github"
)

// Server serves the branch timeline dashboard for one GitHub repository:
// an HTML index, JSON endpoints for the current snapshot, and a WebSocket
// that pushes fresh snapshots as the repository changes.
type Server struct {
	fetcher github.Fetcher
	owner   string
	repo    string
	port    int

	cfgMu sync.RWMutex
	cfg   *config.Config

	cacheMu sync.RWMutex
	cached  *Snapshot

	clientsMu sync.RWMutex
	clients   map[*websocket.Conn]bool
	broadcast chan UpdateMessage

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a server for owner/repo backed by the given fetcher.
func New(fetcher github.Fetcher, cfg *config.Config, owner, repo string) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		fetcher:   fetcher,
		owner:     owner,
		repo:      repo,
		port:      cfg.Port,
		cfg:       cfg,
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan UpdateMessage, 256),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start performs an initial fetch, launches the background loops, and
// serves HTTP until the listener fails.
func (s *Server) Start() error {
	// Initial fetch so the first page load has data. A failure here is
	// logged, not fatal; the refresh loop retries.
	s.refreshOnce()

	s.wg.Add(2)
	go s.handleBroadcast()
	go s.refreshLoop()

	return http.ListenAndServe(fmt.Sprintf(":%d", s.port), s.Handler())
}

// Stop cancels the background loops and waits for them to exit.
func (s *Server) Stop() {
	s.cancel()
	s.wg.Wait()
}

// Handler returns the route table. Split out from Start for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/snapshot", s.handleSnapshot)
	mux.HandleFunc("/api/layout", s.handleLayout)
	mux.HandleFunc("/api/commits", s.handleCommits)
	mux.HandleFunc("/api/branches", s.handleBranches)
	mux.HandleFunc("/api/repository", s.handleRepository)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/ws", s.handleWebSocket)
	return mux
}

// ApplyConfig swaps in a hot-reloaded config. The commit limit and refresh
// period take effect on the next refresh pass; the port does not change at
// runtime.
func (s *Server) ApplyConfig(cfg *config.Config) {
	s.cfgMu.Lock()
	s.cfg = cfg
	s.cfgMu.Unlock()
	log.Info("applied new config", "commit_limit", cfg.CommitLimit, "refresh_period", cfg.RefreshPeriod())
}

func (s *Server) commitLimit() int {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg.CommitLimit
}

func (s *Server) snapshot() *Snapshot {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()
	return s.cached
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, func(snap *Snapshot) interface{} { return snap })
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, func(snap *Snapshot) interface{} { return snap.Layout })
}

func (s *Server) handleCommits(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, func(snap *Snapshot) interface{} { return snap.Commits })
}

func (s *Server) handleBranches(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, func(snap *Snapshot) interface{} { return snap.Branches })
}

func (s *Server) handleRepository(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, func(snap *Snapshot) interface{} { return snap.Repository })
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, func(snap *Snapshot) interface{} { return snap.Stats })
}

func (s *Server) writeJSON(w http.ResponseWriter, pick func(*Snapshot) interface{}) {
	snap := s.snapshot()
	if snap == nil {
		http.Error(w, "no data fetched yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(pick(snap)); err != nil {
		log.Error("encoding response", "err", err)
	}
}
