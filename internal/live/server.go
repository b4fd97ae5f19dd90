package live

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-echarts/go-echarts/v2/components"
	"tailscale.com/tsweb"

	"github.com/banshee-data/ripples/internal/httputil"
	"github.com/banshee-data/ripples/internal/monitoring"
	"github.com/banshee-data/ripples/internal/version"
	"github.com/banshee-data/ripples/internal/visualiser"
)

// Server exposes a Feed over HTTP.
type Server struct {
	address string
	feed    *Feed
	server  *http.Server
}

// Config contains configuration options for the live server.
type Config struct {
	Address string
	Feed    *Feed
}

// NewServer creates a server for the given feed. The debug pages are mounted
// under /debug/ and are only reachable from loopback or tailnet addresses.
func NewServer(config Config) *Server {
	s := &Server{
		address: config.Address,
		feed:    config.Feed,
	}
	s.server = &http.Server{
		Addr:              s.address,
		Handler:           s.setupRoutes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the server's routes, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start serves until ctx is cancelled, then shuts down. A listen failure is
// returned immediately.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		monitoring.Logf("live: serving on %s", s.address)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	monitoring.Logf("live: shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		monitoring.Logf("live: shutdown error: %v", err)
		if err := s.server.Close(); err != nil {
			monitoring.Logf("live: force close error: %v", err)
		}
	}
	return nil
}

func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/frame", s.handleFrame)
	mux.HandleFunc("/api/snapshots", s.handleSnapshots)
	mux.HandleFunc("/", s.handleIndex)

	debug := tsweb.Debugger(mux)
	debug.KV("Version", version.Version)
	debug.Handle("frame", "Latest profile frame (JSON)", http.HandlerFunc(s.handleFrame))
	debug.Handle("snapshots", "Snapshot buffer of the finished run (JSON)", http.HandlerFunc(s.handleSnapshots))

	return mux
}

type healthResponse struct {
	Status   string `json:"status"`
	Frames   int    `json:"frames"`
	Impacts  int    `json:"impacts"`
	Updated  string `json:"updated,omitempty"`
	Finished bool   `json:"finished"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	frames, updated := s.feed.Frames()
	resp := healthResponse{Status: "ok", Frames: frames}
	if fr, ok := s.feed.Latest(); ok {
		resp.Impacts = fr.Impacts
		resp.Updated = updated.UTC().Format(time.RFC3339)
	}
	_, resp.Finished = s.feed.Result()
	httputil.NoStore(w)
	httputil.WriteJSONOK(w, resp)
}

type frameResponse struct {
	Impacts   int       `json:"impacts"`
	Positions []float64 `json:"positions"`
	Profile   []float64 `json:"profile"`
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	fr, ok := s.feed.Latest()
	if !ok {
		httputil.ServiceUnavailable(w, "no frame rendered yet")
		return
	}
	httputil.NoStore(w)
	httputil.WriteJSONOK(w, frameResponse{Impacts: fr.Impacts, Positions: fr.Positions, Profile: fr.Profile})
}

type snapshotResponse struct {
	Impacts int       `json:"impacts"`
	Profile []float64 `json:"profile"`
}

type statsResponse struct {
	Events   int `json:"events"`
	Resolved int `json:"resolved"`
	Skipped  int `json:"skipped"`
	Wrapped  int `json:"wrapped"`
	Frames   int `json:"frames"`
}

type snapshotsResponse struct {
	RunID     string             `json:"run_id"`
	ElapsedMS int64              `json:"elapsed_ms"`
	Positions []float64          `json:"positions"`
	Snapshots []snapshotResponse `json:"snapshots"`
	Stats     statsResponse      `json:"stats"`
}

func (s *Server) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	res, ok := s.feed.Result()
	if !ok {
		httputil.ServiceUnavailable(w, "run in progress")
		return
	}

	resp := snapshotsResponse{
		RunID:     res.RunID,
		ElapsedMS: res.Elapsed.Milliseconds(),
		Positions: res.Positions,
		Snapshots: make([]snapshotResponse, len(res.Snapshots)),
		Stats: statsResponse{
			Events:   res.Stats.Events,
			Resolved: res.Stats.Resolved,
			Skipped:  res.Stats.Skipped,
			Wrapped:  res.Stats.Wrapped,
			Frames:   res.Stats.Frames,
		},
	}
	for i, snap := range res.Snapshots {
		resp.Snapshots[i] = snapshotResponse{Impacts: snap.Impacts, Profile: snap.Profile}
	}
	httputil.WriteJSONOK(w, resp)
}

// handleIndex renders the latest frame, and the snapshot series once the run
// has finished.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		httputil.WriteJSONError(w, http.StatusNotFound, "not found")
		return
	}
	fr, ok := s.feed.Latest()
	if !ok {
		httputil.ServiceUnavailable(w, "no frame rendered yet")
		return
	}

	cs := []components.Charter{visualiser.FrameChart(fr)}
	if res, done := s.feed.Result(); done {
		if series, err := visualiser.SnapshotChart(res.Positions, res.Snapshots); err == nil {
			cs = append(cs, series)
		}
	}

	var buf bytes.Buffer
	if err := visualiser.EchartsPage(&buf, cs...); err != nil {
		monitoring.Logf("live: render index: %v", err)
		httputil.InternalServerError(w, "failed to render page")
		return
	}
	httputil.NoStore(w)
	httputil.WriteHTML(w, http.StatusOK, buf.Bytes())
}
