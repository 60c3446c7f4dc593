package converter

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/ougirez/agreste/internal/domain"
	"github.com/ougirez/agreste/internal/domain/dto"
	"github.com/ougirez/agreste/internal/pkg/logger"
)

const (
	SheetSeries = "TER"
	// SauLabel marks the rows of the SAA workbook that carry the utilised agricultural area.
	SauLabel = "28 - SURFACE AGRICOLE UTILISÉE DES EXPLOITATIONS (21 + 26 + 27)"

	seriesHeaderRow = 5
	columnSaa       = "LIB_SAA"
	columnDep       = "LIB_DEP"
	columnReg       = "LIB_REG2"
)

type SeriesOpts struct {
	Level domain.Level
	// Years defaults to domain.Years().
	Years []domain.Year
}

func (o SeriesOpts) labelColumn() string {
	if o.Level == domain.LevelRegions {
		return columnReg
	}
	return columnDep
}

func seriesMetadata(opts SeriesOpts) domain.SeriesMetadata {
	md := domain.SeriesMetadata{
		Source: "Agreste - Statistique Agricole Annuelle (SAA) 2010-2024",
		URL:    "https://agreste.agriculture.gouv.fr/",
		Years:  opts.Years,
		Unit:   "hectares",
	}
	first, last := opts.Years[0], opts.Years[len(opts.Years)-1]
	if opts.Level == domain.LevelRegions {
		md.Description = fmt.Sprintf("Surface Agricole Utilisée (SAU) des exploitations par région, de %d à %d", first, last)
		md.Note = "Régions métropolitaines et DOM"
	} else {
		md.Description = fmt.Sprintf("Surface Agricole Utilisée (SAU) des exploitations par département, de %d à %d", first, last)
		md.Note = "Départements métropolitains et DOM"
	}
	return md
}

// ConvertSeries reads the SAA regional or departmental workbook into a series dataset.
func ConvertSeries(ctx context.Context, path string, opts SeriesOpts) (*domain.SeriesDataset, error) {
	if !opts.Level.Valid() {
		return nil, fmt.Errorf("unknown level %q", opts.Level)
	}
	if len(opts.Years) == 0 {
		opts.Years = domain.Years()
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("excelize.OpenFile: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetSeries, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("GetRows, sheet-%s: %w", SheetSeries, err)
	}
	if len(rows) <= seriesHeaderRow {
		return nil, fmt.Errorf("sheet %s: no header row", SheetSeries)
	}

	columns := make(map[string]int, len(rows[seriesHeaderRow]))
	for i, title := range rows[seriesHeaderRow] {
		columns[strings.TrimSpace(title)] = i
	}

	saaCol, ok := columns[columnSaa]
	if !ok {
		return nil, fmt.Errorf("sheet %s: missing column %s", SheetSeries, columnSaa)
	}
	labelCol, ok := columns[opts.labelColumn()]
	if !ok {
		return nil, fmt.Errorf("sheet %s: missing column %s", SheetSeries, opts.labelColumn())
	}

	set := dto.NewSeriesSet(opts.Years)
	for _, row := range rows[seriesHeaderRow+1:] {
		if strings.TrimSpace(cell(row, saaCol)) != SauLabel {
			continue
		}

		code, name, ok := ParseAreaLabel(cell(row, labelCol))
		if !ok {
			continue
		}

		series := set.GetSeries(code, name)
		for _, year := range opts.Years {
			col, ok := columns[fmt.Sprintf("SURF_%d", year)]
			if !ok {
				continue
			}
			v, err := decimal.NewFromString(strings.TrimSpace(cell(row, col)))
			if err != nil {
				continue
			}
			if err = series.PutData(year, v); err != nil {
				return nil, err
			}
			set.AddNational(year, v)
		}
	}

	res := &domain.SeriesDataset{
		Metadata: seriesMetadata(opts),
		National: set.National(),
	}
	if opts.Level == domain.LevelRegions {
		res.Regions = set.Areas()
	} else {
		res.Departments = set.Areas()
	}

	logger.Infof(ctx, "converted %s: %d %s", path, len(res.Areas(opts.Level)), opts.Level)

	return res, nil
}

// ParseAreaLabel splits "077 - Seine-et-Marne" into code "77" and its name. Metropolitan
// three-digit codes lose their leading zero, Corsica's 02A/02B become 2A/2B and the
// overseas 97x codes are kept.
func ParseAreaLabel(label string) (code, name string, ok bool) {
	code, name, ok = strings.Cut(strings.TrimSpace(label), " - ")
	if !ok {
		return "", "", false
	}
	code, name = strings.TrimSpace(code), strings.TrimSpace(name)

	switch {
	case len(code) == 3 && isDigits(code) && !strings.HasPrefix(code, "97"):
		code = padCode(strings.TrimLeft(code, "0"))
	case code == "02A" || code == "02B":
		code = code[1:]
	}

	return code, name, true
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
