// Package webapp is the HTTP front-end adapter: it maps web requests onto
// pipeline runs and relays the outcome. It adds no processing semantics of
// its own.
package webapp

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"hashcrack/internal/config"
	"hashcrack/internal/logging"
	"hashcrack/internal/pipeline"
	"hashcrack/pkg/api"
)

//go:embed index.html
var indexHTML []byte

// maxRequestBytes bounds an /api/run body. Wordlists beyond this belong on
// disk with the CLI, not inline in a browser request.
const maxRequestBytes = 16 << 20

// Server serves the single-page UI and the run endpoint.
type Server struct {
	base config.Config
	log  *logging.Logger

	address         string
	shutdownTimeout time.Duration

	// ready is closed once the listener is bound. Tests use it together
	// with Addr to reach an OS-assigned port.
	ready chan struct{}
	addr  net.Addr

	mux *http.ServeMux
}

// New builds a Server around a base configuration. Per-request overrides
// are applied on a copy; base itself is never mutated.
func New(address string, base config.Config, log *logging.Logger) *Server {
	s := &Server{
		base:            base,
		log:             log,
		address:         address,
		shutdownTimeout: 10 * time.Second,
		ready:           make(chan struct{}),
		mux:             http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	s.mux.HandleFunc("POST /api/run", s.handleRun)
	return s
}

// Ready is closed once the server is bound and accepting connections.
func (s *Server) Ready() <-chan struct{} { return s.ready }

// Addr returns the resolved listen address. Valid only after Ready is
// closed.
func (s *Server) Addr() net.Addr { return s.addr }

// Handler exposes the route table for in-process tests.
func (s *Server) Handler() http.Handler { return s.mux }

// Serve binds the listener and blocks until ctx is cancelled, then drains
// in-flight requests for up to the shutdown timeout.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.address, err)
	}
	s.addr = ln.Addr()
	close(s.ready)

	srv := &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	s.log.Infof("web ui listening on %s", s.addr)

	serveDone := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveDone <- err
		}
		close(serveDone)
	}()

	select {
	case <-ctx.Done():
		s.log.Infof("web ui shutting down")
	case err := <-serveDone:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	var req api.RunRequestV1
	body := http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	if req.CSVData == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("csv_data is required"))
		return
	}

	res, err := s.runPipeline(r.Context(), req)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	resp := api.RunResponseV1{
		Success:      true,
		JobID:        res.RunID,
		MatchesFound: res.Matches,
		Results:      res.Report.Matches,
		Stats: api.RunStatsV1{
			TotalItems:     res.Items,
			MatchesFound:   res.Matches,
			SkippedRecords: res.WordlistStats.Skipped,
			ElapsedSeconds: res.Elapsed.Seconds(),
		},
	}
	if res.Elapsed > 0 {
		resp.Stats.ItemsPerSecond = float64(res.Items) / res.Elapsed.Seconds()
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// runPipeline writes the inline CSV to a temp file, finalizes a per-request
// configuration, and runs the pipeline. Temp artifacts are removed before
// returning; the report has already been relayed by then.
func (s *Server) runPipeline(ctx context.Context, req api.RunRequestV1) (*pipeline.Result, error) {
	csvFile, err := os.CreateTemp("", "hashcrack-web-*.csv")
	if err != nil {
		return nil, fmt.Errorf("create temp wordlist: %w", err)
	}
	defer os.Remove(csvFile.Name())
	if _, err := csvFile.WriteString(req.CSVData); err != nil {
		csvFile.Close()
		return nil, fmt.Errorf("write temp wordlist: %w", err)
	}
	if err := csvFile.Close(); err != nil {
		return nil, fmt.Errorf("write temp wordlist: %w", err)
	}

	resultsFile, err := os.CreateTemp("", "hashcrack-web-*-results.json")
	if err != nil {
		return nil, fmt.Errorf("create temp results file: %w", err)
	}
	resultsFile.Close()
	defer os.Remove(resultsFile.Name())

	cfg := s.base
	cfg.Input.CSVPath = csvFile.Name()
	cfg.Output.LogPath = s.log.Path()
	cfg.Output.ResultsPath = resultsFile.Name()

	if req.Target != "" {
		cfg.Hash.Target = req.Target
	}
	if req.Algorithm != "" {
		cfg.Hash.Algorithm = req.Algorithm
	}
	if req.Workers > 0 {
		cfg.General.WorkerCount = req.Workers
	}
	if req.ChunkSize > 0 {
		cfg.General.ChunkSize = req.ChunkSize
	}
	if req.Iterations > 0 {
		cfg.Hash.Iterations = req.Iterations
	}
	if req.SaltLength > 0 {
		cfg.Hash.SaltLength = req.SaltLength
	}

	cfg, err = config.Finalize(ctx, cfg)
	if err != nil {
		return nil, err
	}

	res, err := pipeline.Run(ctx, pipeline.Options{Config: cfg, Log: s.log})
	if err != nil {
		return nil, err
	}
	if res.PersistErr != nil {
		// The response carries the matches either way.
		s.log.Warnf("web run %s: persisting report: %v", res.RunID, res.PersistErr)
	}
	return res, nil
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.log.Errorf("web request failed: %v", err)
	s.writeJSON(w, status, api.RunResponseV1{Success: false, Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Errorf("encode response: %v", err)
	}
}
