package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/AlexRiggs/hemo/pkg/httputil"
	"github.com/AlexRiggs/hemo/pkg/netio"
	"github.com/AlexRiggs/hemo/pkg/pipeline"
	"github.com/AlexRiggs/hemo/pkg/store"
	"github.com/AlexRiggs/hemo/pkg/vascular"
)

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API for generation and persisted networks",
		Long: `Run the HTTP API.

Endpoints:
  POST   /networks           generate a network and persist it
  GET    /networks           list persisted networks
  GET    /networks/{id}      fetch one network
  GET    /networks/{id}/metrics  derived flow/resistance/surface/volume
  DELETE /networks/{id}      delete a network
  GET    /healthz            liveness probe`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	return cmd
}

// runServe starts the API server and blocks until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr string) error {
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	st, err := c.newStore(ctx)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer st.Close(ctx)

	api := &apiServer{cli: c, runner: runner, store: st}

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("API listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// =============================================================================
// API Server
// =============================================================================

// apiServer bundles the handler dependencies.
type apiServer struct {
	cli    *CLI
	runner *pipeline.Runner
	store  store.Store
}

// routes builds the chi router.
func (s *apiServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/networks", func(r chi.Router) {
		r.Post("/", s.handleGenerate)
		r.Get("/", s.handleList)
		r.Get("/{id}", s.handleGet)
		r.Get("/{id}/metrics", s.handleMetrics)
		r.Delete("/{id}", s.handleDelete)
	})

	return r
}

// handleGenerate runs the pipeline for the posted options and persists the
// result.
func (s *apiServer) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := httputil.Decode(r, &opts); err != nil {
		httputil.Error(w, err)
		return
	}
	opts.Logger = s.cli.Logger
	opts.Physics = s.cli.physics()

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	record := &store.Record{
		Resolution: opts.Resolution,
		Seed:       opts.Seed,
		Symmetric:  opts.Symmetric,
		Passes:     opts.Passes,
		Network:    netio.FromNetwork(result.Network),
	}
	id, err := s.store.Put(r.Context(), record)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, map[string]any{
		"id":         id,
		"node_count": result.Stats.NodeCount,
		"edge_count": result.Stats.EdgeCount,
		"cache_hit":  result.CacheHit,
	})
}

// handleList returns summaries of all persisted networks.
func (s *apiServer) handleList(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.store.List(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}
	if summaries == nil {
		summaries = []store.Summary{}
	}
	httputil.JSON(w, http.StatusOK, summaries)
}

// handleGet returns a full persisted record.
func (s *apiServer) handleGet(w http.ResponseWriter, r *http.Request) {
	record, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, record)
}

// metricsResponse is the body of the metrics endpoint.
type metricsResponse struct {
	TotalFlow       float64 `json:"total_flow"`
	TotalResistance float64 `json:"total_resistance"`
	SurfaceArea     float64 `json:"surface_area"`
	TotalVolume     float64 `json:"total_volume"`
}

// handleMetrics computes derived quantities for a persisted network.
func (s *apiServer) handleMetrics(w http.ResponseWriter, r *http.Request) {
	record, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}
	net, err := netio.ToNetwork(record.Network)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	phys := s.cli.physics()
	var resp metricsResponse
	if resp.SurfaceArea, err = vascular.SurfaceArea(net); err != nil {
		httputil.Error(w, err)
		return
	}
	if resp.TotalVolume, err = vascular.TotalVolume(net); err != nil {
		httputil.Error(w, err)
		return
	}
	if resp.TotalFlow, err = vascular.TotalFlow(net); err != nil {
		httputil.Error(w, err)
		return
	}
	if resp.TotalResistance, err = vascular.TotalResistance(net, phys); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, resp)
}

// handleDelete removes a persisted network.
func (s *apiServer) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
