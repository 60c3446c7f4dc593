package loader

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/ougirez/agreste/internal/domain"
	"github.com/ougirez/agreste/internal/pkg/logger"
	"github.com/ougirez/agreste/internal/pkg/store"
	"github.com/ougirez/agreste/internal/service/census"
)

// Loader produces the dataset bundle the dashboard is served from.
type Loader interface {
	Load(ctx context.Context) (census.Bundle, error)
}

// Names are the document names of the three datasets.
type Names struct {
	Census      string
	Regions     string
	Departments string
}

type documentLoader struct {
	fetcher  Fetcher
	names    Names
	validate *validator.Validate
}

func NewDocumentLoader(fetcher Fetcher, names Names) Loader {
	return &documentLoader{fetcher: fetcher, names: names, validate: validator.New()}
}

func (l *documentLoader) Load(ctx context.Context) (census.Bundle, error) {
	var (
		bundle      census.Bundle
		regions     = new(domain.SeriesDataset)
		departments = new(domain.SeriesDataset)
	)
	bundle.Census = new(domain.Census)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return l.loadDocument(egCtx, l.names.Census, bundle.Census)
	})
	eg.Go(func() error {
		return l.loadDocument(egCtx, l.names.Regions, regions)
	})
	eg.Go(func() error {
		return l.loadDocument(egCtx, l.names.Departments, departments)
	})
	if err := eg.Wait(); err != nil {
		return census.Bundle{}, err
	}

	bundle.RegionSeries = regions
	bundle.DepartmentSeries = departments

	if err := checkLinks(bundle.Census); err != nil {
		return census.Bundle{}, fmt.Errorf("%s: %w", l.names.Census, err)
	}

	logger.Infof(ctx, "loaded %d regions, %d departments, %d+%d series",
		len(bundle.Census.Regions), len(bundle.Census.Departments), len(regions.Regions), len(departments.Departments))

	return bundle, nil
}

func (l *documentLoader) loadDocument(ctx context.Context, name string, dst any) error {
	data, err := l.fetcher.Fetch(ctx, name)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", name, err)
	}

	if err = sonic.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}

	if err = l.validate.Struct(dst); err != nil {
		return fmt.Errorf("validate %s: %w", name, err)
	}

	return nil
}

func checkLinks(c *domain.Census) error {
	if _, err := census.NewIndex(c, census.IndexOpts{}); err != nil {
		return fmt.Errorf("census.NewIndex: %w", err)
	}
	return nil
}

type storeLoader struct {
	store store.Store
}

// NewStoreLoader loads the bundle previously imported into Postgres.
func NewStoreLoader(s store.Store) Loader {
	return &storeLoader{store: s}
}

func (l *storeLoader) Load(ctx context.Context) (census.Bundle, error) {
	var bundle census.Bundle

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		bundle.Census, err = l.store.LoadCensus(egCtx)
		if err != nil {
			return fmt.Errorf("store.LoadCensus: %w", err)
		}
		return nil
	})
	eg.Go(func() (err error) {
		bundle.RegionSeries, err = l.store.LoadSeries(egCtx, domain.LevelRegions)
		if err != nil {
			return fmt.Errorf("store.LoadSeries, level-%s: %w", domain.LevelRegions, err)
		}
		return nil
	})
	eg.Go(func() (err error) {
		bundle.DepartmentSeries, err = l.store.LoadSeries(egCtx, domain.LevelDepartments)
		if err != nil {
			return fmt.Errorf("store.LoadSeries, level-%s: %w", domain.LevelDepartments, err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return census.Bundle{}, err
	}

	if err := checkLinks(bundle.Census); err != nil {
		return census.Bundle{}, err
	}

	return bundle, nil
}
