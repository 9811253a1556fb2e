// Copyright (c) 2026 dotandev
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package daemon

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dotandev/svginvert/internal/errors"
	"github.com/dotandev/svginvert/internal/invert"
	"github.com/dotandev/svginvert/internal/logger"
	"github.com/dotandev/svginvert/internal/telemetry"
	"github.com/google/uuid"
	"github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json2"
	"go.opentelemetry.io/otel/attribute"
)

// ServiceName is the JSON-RPC namespace of every method.
const ServiceName = "InvertService"

// DefaultMaxDocumentBytes caps the size of a request body.
const DefaultMaxDocumentBytes = 16 << 20

// Config holds daemon configuration
type Config struct {
	Addr             string
	AuthToken        string
	MaxDocumentBytes int64
}

// InvertRequest represents the InvertService.Invert request
type InvertRequest struct {
	Document string `json:"document"`
}

// InvertResponse represents the InvertService.Invert response
type InvertResponse struct {
	RequestID string       `json:"request_id"`
	Document  string       `json:"document"`
	Stats     invert.Stats `json:"stats"`
}

// InvertColorRequest represents the InvertService.InvertColor request
type InvertColorRequest struct {
	Colors []string `json:"colors"`
}

// ColorPair is one inverted literal.
type ColorPair struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// InvertColorResponse represents the InvertService.InvertColor response
type InvertColorResponse struct {
	Colors []ColorPair `json:"colors"`
}

// StatsRequest represents the InvertService.Stats request
type StatsRequest struct{}

// StatsResponse represents the InvertService.Stats response
type StatsResponse struct {
	Parser       string  `json:"parser"`
	Requests     uint64  `json:"requests"`
	Failures     uint64  `json:"failures"`
	CacheEntries int     `json:"cache_entries"`
	CacheHits    uint64  `json:"cache_hits"`
	CacheMisses  uint64  `json:"cache_misses"`
	Uptime       float64 `json:"uptime_seconds"`
}

// InvertService exposes one shared Inverter over JSON-RPC, so its color cache
// is reused by every request.
type InvertService struct {
	inv       *invert.Inverter
	authToken string
	started   time.Time

	requests atomic.Uint64
	failures atomic.Uint64
}

// NewService creates the RPC receiver.
func NewService(inv *invert.Inverter, authToken string) *InvertService {
	return &InvertService{inv: inv, authToken: authToken, started: time.Now()}
}

// authenticate validates the authorization token
func (s *InvertService) authenticate(r *http.Request) bool {
	if s.authToken == "" {
		return true
	}

	auth := r.Header.Get("Authorization")
	if auth == "" {
		return false
	}
	token := strings.TrimPrefix(auth, "Bearer ")
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.authToken)) == 1
}

// Invert handles InvertService.Invert calls
func (s *InvertService) Invert(r *http.Request, req *InvertRequest, resp *InvertResponse) error {
	if !s.authenticate(r) {
		return rpcError(errors.ErrUnauthorized)
	}
	s.requests.Add(1)

	id := uuid.NewString()
	ctx, span := telemetry.GetTracer().Start(r.Context(), "rpc_invert")
	span.SetAttributes(
		attribute.String("request.id", id),
		attribute.Int("document.bytes", len(req.Document)),
	)
	defer span.End()

	if strings.TrimSpace(req.Document) == "" {
		s.failures.Add(1)
		return rpcError(errors.WrapInvalidRequest("document is empty"))
	}

	logger.Logger.Info("Processing Invert RPC", "request_id", id, "bytes", len(req.Document))

	var out strings.Builder
	st, err := s.inv.Run(ctx, strings.NewReader(req.Document), &out)
	if err != nil {
		s.failures.Add(1)
		span.RecordError(err)
		logger.Logger.Warn("Invert RPC failed", "request_id", id, "error", err)
		return rpcError(err)
	}

	*resp = InvertResponse{RequestID: id, Document: out.String(), Stats: st}
	return nil
}

// InvertColor handles InvertService.InvertColor calls
func (s *InvertService) InvertColor(r *http.Request, req *InvertColorRequest, resp *InvertColorResponse) error {
	if !s.authenticate(r) {
		return rpcError(errors.ErrUnauthorized)
	}
	s.requests.Add(1)

	_, span := telemetry.GetTracer().Start(r.Context(), "rpc_invert_color")
	span.SetAttributes(attribute.Int("colors", len(req.Colors)))
	defer span.End()

	if len(req.Colors) == 0 {
		s.failures.Add(1)
		return rpcError(errors.WrapInvalidRequest("colors is empty"))
	}

	pairs := make([]ColorPair, len(req.Colors))
	for i, c := range req.Colors {
		pairs[i] = ColorPair{Input: c, Output: s.inv.InvertColor(c)}
	}
	*resp = InvertColorResponse{Colors: pairs}
	return nil
}

// Stats handles InvertService.Stats calls
func (s *InvertService) Stats(r *http.Request, _ *StatsRequest, resp *StatsResponse) error {
	if !s.authenticate(r) {
		return rpcError(errors.ErrUnauthorized)
	}

	cs := s.inv.Cache().Stats()
	*resp = StatsResponse{
		Parser:       s.inv.Parser().Name(),
		Requests:     s.requests.Load(),
		Failures:     s.failures.Load(),
		CacheEntries: cs.Entries,
		CacheHits:    cs.Hits,
		CacheMisses:  cs.Misses,
		Uptime:       time.Since(s.started).Seconds(),
	}
	return nil
}

// rpcError maps the error taxonomy onto JSON-RPC error codes.
func rpcError(err error) error {
	code := json2.E_SERVER
	switch {
	case stderrors.Is(err, errors.ErrInvalidRequest):
		code = json2.E_BAD_PARAMS
	case errors.IsRead(err):
		code = json2.E_BAD_PARAMS
	}
	return &json2.Error{Code: code, Message: err.Error()}
}

// Server serves InvertService over HTTP.
type Server struct {
	cfg     Config
	service *InvertService
}

// NewServer creates a new JSON-RPC server
func NewServer(inv *invert.Inverter, cfg Config) *Server {
	if cfg.MaxDocumentBytes <= 0 {
		cfg.MaxDocumentBytes = DefaultMaxDocumentBytes
	}
	return &Server{cfg: cfg, service: NewService(inv, cfg.AuthToken)}
}

// Handler returns the HTTP routes: POST /rpc and GET /health.
func (s *Server) Handler() (http.Handler, error) {
	server := rpc.NewServer()
	server.RegisterCodec(json2.NewCodec(), "application/json")
	server.RegisterCodec(json2.NewCodec(), "application/json;charset=UTF-8")

	if err := server.RegisterService(s.service, ServiceName); err != nil {
		return nil, fmt.Errorf("failed to register service: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/rpc", http.MaxBytesHandler(server, s.cfg.MaxDocumentBytes))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	return mux, nil
}

// Start serves on cfg.Addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	handler, err := s.Handler()
	if err != nil {
		ln.Close()
		return err
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()
	logger.Logger.Info("Starting JSON-RPC server", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Logger.Info("Shutting down JSON-RPC server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
