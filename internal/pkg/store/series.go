package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/bytedance/sonic"

	"github.com/ougirez/agreste/internal/domain"
	"github.com/ougirez/agreste/internal/pkg/logger"
)

var sauSeriesColumns = []string{"level", "code", "position", "name", "sau_by_year"}

type sauSeriesRow struct {
	Level     string `db:"level"`
	Code      string `db:"code"`
	Position  int    `db:"position"`
	Name      string `db:"name"`
	SauByYear []byte `db:"sau_by_year"`
}

// SaveSeries replaces one SAU series document. The national figures are kept as a row
// of their own, tagged with the series level so both documents round-trip.
func (s *store) SaveSeries(ctx context.Context, level domain.Level, series *domain.SeriesDataset) error {
	national, err := sonic.Marshal(series.National.SauByYear)
	if err != nil {
		return fmt.Errorf("failed to marshal national sau_by_year: %w", err)
	}

	query := builder().Insert(tableSauSeries).
		Columns(sauSeriesColumns...).
		Values(nationalLevel(level), codeNational, 0, "", national)

	for i, area := range series.Areas(level) {
		byYear, err := sonic.Marshal(area.SauByYear)
		if err != nil {
			return fmt.Errorf("failed to marshal sau_by_year, %s-%s: %w", level, area.Code, err)
		}
		query = query.Values(string(level), area.Code, i, area.Name, byYear)
	}

	return s.pool.InTx(ctx, func(tx Pool) error {
		if err := saveMetadata(ctx, tx, seriesMetadataName(string(level)), series.Metadata); err != nil {
			logger.Errorf(ctx, "saveMetadata: %s", err.Error())
			return fmt.Errorf("saveMetadata: %w", err)
		}

		deleteQuery := builder().Delete(tableSauSeries).
			Where(sq.Eq{"level": []string{string(level), nationalLevel(level)}})
		if _, err := tx.Execx(ctx, deleteQuery); err != nil {
			logger.Error(ctx, err.Error())
			return fmt.Errorf("delete sau series: %w", err)
		}

		if _, err := tx.Execx(ctx, query); err != nil {
			logger.Error(ctx, err.Error())
			return fmt.Errorf("insert sau series: %w", err)
		}

		return nil
	})
}

func (s *store) LoadSeries(ctx context.Context, level domain.Level) (*domain.SeriesDataset, error) {
	series := new(domain.SeriesDataset)
	if err := s.loadMetadata(ctx, seriesMetadataName(string(level)), &series.Metadata); err != nil {
		return nil, fmt.Errorf("loadMetadata: %w", err)
	}

	query := builder().Select(sauSeriesColumns...).
		From(tableSauSeries).
		Where(sq.Eq{"level": []string{string(level), nationalLevel(level)}}).
		OrderBy("position")

	var rows []*sauSeriesRow
	if err := s.pool.Selectx(ctx, &rows, query); err != nil {
		logger.Error(ctx, err.Error())
		return nil, wrapErr(err)
	}

	for _, row := range rows {
		byYear := domain.YearData{}
		if err := sonic.Unmarshal(row.SauByYear, &byYear); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sau_by_year, %s-%s: %w", row.Level, row.Code, err)
		}

		if row.Level == nationalLevel(level) {
			series.National.SauByYear = byYear
			continue
		}

		area := domain.SeriesArea{Code: row.Code, Name: row.Name, SauByYear: byYear}
		if level == domain.LevelRegions {
			series.Regions = append(series.Regions, area)
		} else {
			series.Departments = append(series.Departments, area)
		}
	}

	return series, nil
}

func nationalLevel(level domain.Level) string {
	return levelNational + "_" + string(level)
}
