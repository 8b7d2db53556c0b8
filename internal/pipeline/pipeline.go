// Package pipeline orchestrates one batch computation: ingest, normalize,
// enrich, aggregate, geo join, snapshot. The transform itself is a single
// synchronous pass; only the two input loads run concurrently.
package pipeline

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/schoolutil-cli/internal/aggregate"
	"github.com/sells-group/schoolutil-cli/internal/config"
	"github.com/sells-group/schoolutil-cli/internal/geo"
	"github.com/sells-group/schoolutil-cli/internal/ingest"
	"github.com/sells-group/schoolutil-cli/internal/model"
	"github.com/sells-group/schoolutil-cli/internal/normalize"
	"github.com/sells-group/schoolutil-cli/internal/store"
	"github.com/sells-group/schoolutil-cli/internal/utilization"
)

// Pipeline computes utilization snapshots.
type Pipeline struct {
	cfg        *config.Config
	store      store.Store
	thresholds model.Thresholds
}

// New creates a Pipeline. The threshold set is fixed per pipeline; callers
// overriding thresholds construct a new one.
func New(cfg *config.Config, st store.Store, thresholds model.Thresholds) *Pipeline {
	return &Pipeline{cfg: cfg, store: st, thresholds: thresholds}
}

// Result pairs the snapshot with run bookkeeping.
type Result struct {
	Snapshot *model.Snapshot
	Run      *model.Run
	Cached   bool
}

// Run executes the full pipeline. If the store already holds a snapshot
// for the same dataset bytes, thresholds, and year, that snapshot is
// returned unchanged.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	run, err := p.store.CreateRun(ctx, p.datasetSource())
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: create run")
	}

	res, err := p.compute(ctx)
	if err != nil {
		if failErr := p.store.FailRun(ctx, run.ID, err); failErr != nil {
			zap.L().Warn("pipeline: failed to record run failure", zap.Error(failErr))
		}
		return nil, err
	}

	status := model.RunStatusComplete
	if res.Cached {
		status = model.RunStatusCached
	}
	if err := p.store.CompleteRun(ctx, run.ID, status, res.Snapshot); err != nil {
		zap.L().Warn("pipeline: failed to record run completion", zap.Error(err))
	}
	run.Status = status
	run.Fingerprint = res.Snapshot.Fingerprint
	run.Buildings = len(res.Snapshot.Buildings)
	run.Rejections = len(res.Snapshot.Rejections)
	res.Run = run

	return res, nil
}

func (p *Pipeline) compute(ctx context.Context) (*Result, error) {
	var (
		ds         *ingest.Dataset
		boundaries *geo.BoundarySet
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ds, err = ingest.Load(gctx, p.cfg.Dataset)
		return err
	})
	if p.cfg.Boundary.ShapefilePath != "" {
		g.Go(func() error {
			var err error
			boundaries, err = geo.LoadBoundaries(p.cfg.Boundary.ShapefilePath)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	fingerprint := Fingerprint(ds.Raw, p.thresholds, p.cfg.Dataset.Year)
	if cached, err := p.store.GetSnapshot(ctx, fingerprint); err != nil {
		zap.L().Warn("pipeline: snapshot cache lookup failed", zap.Error(err))
	} else if cached != nil {
		zap.L().Info("pipeline: serving cached snapshot",
			zap.String("fingerprint", fingerprint),
		)
		return &Result{Snapshot: cached, Cached: true}, nil
	}

	norm := normalize.Run(ds.Header, ds.Rows, normalize.Options{
		Year:               p.cfg.Dataset.Year,
		DropZeroEnrollment: p.cfg.Dataset.DropZeroEnrollment,
	})

	utilization.Enrich(norm.Records, p.thresholds)

	districts, noData := aggregate.Summarize(norm.Records)
	citywide := aggregate.Citywide(norm.Records, districts)
	aggregate.SortBuildings(norm.Records)

	geoRefs := map[string]*model.GeoRef{}
	if boundaries != nil {
		geoRefs = geo.Join(norm.Records, boundaries)
	}

	snap := &model.Snapshot{
		Fingerprint: fingerprint,
		Year:        p.cfg.Dataset.Year,
		Thresholds:  p.thresholds,
		Buildings:   norm.Records,
		Districts:   districts,
		NoData:      noData,
		Citywide:    citywide,
		GeoRefs:     geoRefs,
		Rejections:  norm.Rejections,
		CreatedAt:   time.Now().UTC(),
	}

	if err := p.store.SaveSnapshot(ctx, snap); err != nil {
		return nil, eris.Wrap(err, "pipeline: save snapshot")
	}

	zap.L().Info("pipeline: snapshot computed",
		zap.String("fingerprint", fingerprint),
		zap.Int("buildings", len(snap.Buildings)),
		zap.Int("districts", len(snap.Districts)),
		zap.Int("rejections", len(snap.Rejections)),
		zap.Int("skipped_year", norm.SkippedYear),
	)

	return &Result{Snapshot: snap}, nil
}

func (p *Pipeline) datasetSource() string {
	switch {
	case p.cfg.Dataset.CSVPath != "":
		return p.cfg.Dataset.CSVPath
	case p.cfg.Dataset.XLSXPath != "":
		return p.cfg.Dataset.XLSXPath
	default:
		return p.cfg.Dataset.URL
	}
}
