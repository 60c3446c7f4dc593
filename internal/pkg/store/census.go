package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/bytedance/sonic"

	"github.com/ougirez/agreste/internal/domain"
	"github.com/ougirez/agreste/internal/pkg/logger"
)

var (
	metadataColumns    = []string{"name", "payload"}
	censusAreasColumns = []string{"level", "code", "position", "name", "region_name", "nb_exploitations", "sau", "by_class"}
)

type metadataRow struct {
	Name    string `db:"name"`
	Payload []byte `db:"payload"`
}

type censusAreaRow struct {
	Level           string  `db:"level"`
	Code            string  `db:"code"`
	Position        int     `db:"position"`
	Name            string  `db:"name"`
	RegionName      string  `db:"region_name"`
	NbExploitations int64   `db:"nb_exploitations"`
	Sau             float64 `db:"sau"`
	ByClass         []byte  `db:"by_class"`
}

// SaveCensus replaces the stored census: rows of areas missing from census are removed.
func (s *store) SaveCensus(ctx context.Context, census *domain.Census) error {
	query := builder().Insert(tableCensusAreas).
		Columns(censusAreasColumns...)

	nationalByClass, err := sonic.Marshal(census.National.ByClass)
	if err != nil {
		return fmt.Errorf("failed to marshal national by_class: %w", err)
	}
	query = query.Values(levelNational, codeNational, 0, "", "",
		census.National.Total.NbExploitations, census.National.Total.Sau, nationalByClass)

	for _, level := range []domain.Level{domain.LevelRegions, domain.LevelDepartments} {
		for i, area := range census.Areas(level) {
			byClass, err := sonic.Marshal(area.ByClass)
			if err != nil {
				return fmt.Errorf("failed to marshal by_class, %s-%s: %w", level, area.Code, err)
			}
			query = query.Values(string(level), area.Code, i, area.Name, area.RegionName,
				area.Total.NbExploitations, area.Total.Sau, byClass)
		}
	}

	return s.pool.InTx(ctx, func(tx Pool) error {
		if err := saveMetadata(ctx, tx, metadataCensus, census.Metadata); err != nil {
			logger.Errorf(ctx, "saveMetadata: %s", err.Error())
			return fmt.Errorf("saveMetadata: %w", err)
		}

		if _, err := tx.Execx(ctx, builder().Delete(tableCensusAreas)); err != nil {
			logger.Error(ctx, err.Error())
			return fmt.Errorf("delete census areas: %w", err)
		}

		if _, err := tx.Execx(ctx, query); err != nil {
			logger.Error(ctx, err.Error())
			return fmt.Errorf("insert census areas: %w", err)
		}

		return nil
	})
}

func (s *store) LoadCensus(ctx context.Context) (*domain.Census, error) {
	census := new(domain.Census)
	if err := s.loadMetadata(ctx, metadataCensus, &census.Metadata); err != nil {
		return nil, fmt.Errorf("loadMetadata: %w", err)
	}

	query := builder().Select(censusAreasColumns...).
		From(tableCensusAreas).
		OrderBy("level", "position")

	var rows []*censusAreaRow
	if err := s.pool.Selectx(ctx, &rows, query); err != nil {
		logger.Error(ctx, err.Error())
		return nil, wrapErr(err)
	}

	for _, row := range rows {
		byClass := domain.ClassBreakdown{}
		if len(row.ByClass) > 0 {
			if err := sonic.Unmarshal(row.ByClass, &byClass); err != nil {
				return nil, fmt.Errorf("failed to unmarshal by_class, %s-%s: %w", row.Level, row.Code, err)
			}
		}
		total := domain.Tally{NbExploitations: row.NbExploitations, Sau: row.Sau}

		switch domain.Level(row.Level) {
		case domain.LevelRegions:
			census.Regions = append(census.Regions, domain.Area{Code: row.Code, Name: row.Name, ByClass: byClass, Total: total})
		case domain.LevelDepartments:
			census.Departments = append(census.Departments, domain.Area{Code: row.Code, RegionName: row.RegionName, ByClass: byClass, Total: total})
		default:
			census.National = domain.National{ByClass: byClass, Total: total}
		}
	}

	return census, nil
}

func saveMetadata(ctx context.Context, q Pool, name string, metadata any) error {
	payload, err := sonic.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	query := builder().Insert(tableMetadata).
		Columns(metadataColumns...).
		Values(name, payload).
		Suffix(`on conflict (name) do update set payload = excluded.payload, updated_at = now()`)

	_, err = q.Execx(ctx, query)
	return err
}

func (s *store) loadMetadata(ctx context.Context, name string, dst any) error {
	query := builder().Select(metadataColumns...).
		From(tableMetadata).
		Where(sq.Eq{"name": name})

	var row metadataRow
	if err := s.pool.Getx(ctx, &row, query); err != nil {
		return wrapErr(err)
	}

	if err := sonic.Unmarshal(row.Payload, dst); err != nil {
		return fmt.Errorf("failed to unmarshal metadata %s: %w", name, err)
	}
	return nil
}
