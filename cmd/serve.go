package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/schoolutil-cli/internal/geo"
	"github.com/sells-group/schoolutil-cli/internal/model"
	"github.com/sells-group/schoolutil-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the latest snapshot over HTTP for the dashboard frontend",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		// Boundary geometry is static per deployment; load it once.
		var geoJSON []byte
		if cfg.Boundary.ShapefilePath != "" {
			boundaries, err := geo.LoadBoundaries(cfg.Boundary.ShapefilePath)
			if err != nil {
				return err
			}
			geoJSON, err = geo.FeatureCollection(boundaries)
			if err != nil {
				return err
			}
		}

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
		}))

		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Get("/api/snapshot", snapshotHandler(st, func(snap *model.Snapshot) any {
			return map[string]any{
				"fingerprint": snap.Fingerprint,
				"year":        snap.Year,
				"thresholds":  snap.Thresholds,
				"buildings":   len(snap.Buildings),
				"districts":   len(snap.Districts),
				"no_data":     snap.NoData,
				"rejections":  len(snap.Rejections),
				"created_at":  snap.CreatedAt,
			}
		}))

		r.Get("/api/buildings", snapshotHandler(st, func(snap *model.Snapshot) any {
			return snap.Buildings
		}))

		r.Get("/api/citywide", snapshotHandler(st, func(snap *model.Snapshot) any {
			return snap.Citywide
		}))

		r.Get("/api/districts", snapshotHandler(st, func(snap *model.Snapshot) any {
			return map[string]any{
				"districts": snap.Districts,
				"no_data":   snap.NoData,
			}
		}))

		r.Get("/api/districts/{district}", func(w http.ResponseWriter, req *http.Request) {
			d, err := strconv.Atoi(chi.URLParam(req, "district"))
			if err != nil || d < model.MinDistrict || d > model.MaxDistrict {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "district must be in [1,32]"})
				return
			}
			snap, ok := loadSnapshot(st, w, req)
			if !ok {
				return
			}
			s, ok := snap.Districts[d]
			if !ok {
				writeJSON(w, http.StatusNotFound, map[string]any{"district": d, "status": "no_data"})
				return
			}
			writeJSON(w, http.StatusOK, s)
		})

		r.Get("/api/geo/districts.geojson", func(w http.ResponseWriter, req *http.Request) {
			if geoJSON == nil {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "no boundary shapefile configured"})
				return
			}
			w.Header().Set("Content-Type", "application/geo+json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(geoJSON)
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		go shutdownOnDone(ctx, srv, 10*time.Second)

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// shutdownOnDone drains the server once ctx is cancelled. The signal
// context is already dead at that point, so the drain runs under its own
// deadline; in-flight requests get up to grace to finish.
func shutdownOnDone(ctx context.Context, srv *http.Server, grace time.Duration) {
	<-ctx.Done()
	zap.L().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

// snapshotHandler serves a view of the latest stored snapshot.
func snapshotHandler(st store.Store, view func(*model.Snapshot) any) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		snap, ok := loadSnapshot(st, w, req)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, view(snap))
	}
}

func loadSnapshot(st store.Store, w http.ResponseWriter, req *http.Request) (*model.Snapshot, bool) {
	snap, err := st.LatestSnapshot(req.Context())
	if err != nil {
		zap.L().Error("load latest snapshot", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "snapshot load failed"})
		return nil, false
	}
	if snap == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no snapshot computed yet"})
		return nil, false
	}
	return snap, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
