package store

import (
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ougirez/agreste/internal/pkg/constants"
)

const (
	tableMetadata    = "dataset_metadata"
	tableCensusAreas = "census_areas"
	tableSauSeries   = "sau_series"
)

const (
	metadataCensus = "census"
	levelNational  = "national"
	codeNational   = "FR"
)

var mapping = map[error]error{pgx.ErrNoRows: constants.ErrDBNotFound}

func wrapErr(err error) error {
	for k, v := range mapping {
		if errors.Is(err, k) {
			return v
		}
	}
	return err
}

// builder returns a squirrel statement builder using $n placeholders.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func seriesMetadataName(level string) string {
	return "series_" + level
}
