package store

import (
	"context"

	"github.com/ougirez/agreste/internal/domain"
	"github.com/ougirez/agreste/internal/pkg/store/xpgx"
)

type Pool = xpgx.Pool

type Store interface {
	Migrate(ctx context.Context) error
	SaveCensus(ctx context.Context, census *domain.Census) error
	LoadCensus(ctx context.Context) (*domain.Census, error)
	SaveSeries(ctx context.Context, level domain.Level, series *domain.SeriesDataset) error
	LoadSeries(ctx context.Context, level domain.Level) (*domain.SeriesDataset, error)
}

type store struct {
	pool Pool
}

func NewStore(pool Pool) Store {
	return &store{pool}
}
