package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ougirez/agreste/internal/domain"
	"github.com/ougirez/agreste/internal/pkg/constants"
	"github.com/ougirez/agreste/internal/pkg/logger"
	"github.com/ougirez/agreste/internal/pkg/metrics"
	"github.com/ougirez/agreste/internal/pkg/store"
	"github.com/ougirez/agreste/internal/service/census"
)

type Result struct {
	ID          uuid.UUID `json:"id"`
	Regions     int       `json:"regions"`
	Departments int       `json:"departments"`
	Series      int       `json:"series"`
	ImportedAt  time.Time `json:"imported_at"`
}

type Service struct {
	store store.Store
}

func NewService(s store.Store) *Service {
	return &Service{store: s}
}

// Import writes the three datasets of the bundle to the store. Missing series are skipped.
func (svc *Service) Import(ctx context.Context, bundle census.Bundle) (res *Result, err error) {
	if bundle.Census == nil {
		return nil, constants.ErrDatasetNotLoaded
	}

	id := uuid.New()
	ctx = logger.With(ctx, "import_id", id.String())

	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		metrics.ImportsTotal.WithLabelValues(status).Inc()
	}()

	if err = svc.store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("store.Migrate: %w", err)
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := svc.store.SaveCensus(egCtx, bundle.Census); err != nil {
			return fmt.Errorf("store.SaveCensus: %w", err)
		}
		return nil
	})

	series := 0
	for level, dataset := range map[domain.Level]*domain.SeriesDataset{
		domain.LevelRegions:     bundle.RegionSeries,
		domain.LevelDepartments: bundle.DepartmentSeries,
	} {
		if dataset == nil {
			continue
		}
		series += len(dataset.Areas(level))
		level, dataset := level, dataset
		eg.Go(func() error {
			if err := svc.store.SaveSeries(egCtx, level, dataset); err != nil {
				return fmt.Errorf("store.SaveSeries, level-%s: %w", level, err)
			}
			return nil
		})
	}

	if err = eg.Wait(); err != nil {
		return nil, err
	}

	res = &Result{
		ID:          id,
		Regions:     len(bundle.Census.Regions),
		Departments: len(bundle.Census.Departments),
		Series:      series,
		ImportedAt:  time.Now(),
	}
	logger.Infof(ctx, "imported %d regions, %d departments, %d series", res.Regions, res.Departments, res.Series)

	return res, nil
}
