package converter

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"github.com/ougirez/agreste/internal/domain"
	"github.com/ougirez/agreste/internal/domain/dto"
	"github.com/ougirez/agreste/internal/pkg/logger"
)

const (
	SheetNational    = "FRANCE"
	SheetRegions     = "REGION(avec DOM)"
	SheetDepartments = "DEP"

	totalLabel = "Total"
	// the first row holds the column titles, the second one a sub-header
	censusDataRow = 2
	// FRANCE lists the five classes then the total
	nationalRows = 6
)

var classLabels = map[string]domain.SizeClass{
	"[0,20 ha)":       domain.Class0To20,
	"[0,20)":          domain.Class0To20,
	"[20,50 ha)":      domain.Class20To50,
	"[20,50)":         domain.Class20To50,
	"[50,100 ha)":     domain.Class50To100,
	"[50,100)":        domain.Class50To100,
	"[100,200 ha)":    domain.Class100To200,
	"[100,200)":       domain.Class100To200,
	"[200 ha ou plus": domain.Class200Plus,
	"[200 ou plus":    domain.Class200Plus,
}

// NormalizeClass maps a workbook class label to its dataset key. Unknown labels
// are kept as they are.
func NormalizeClass(label string) domain.SizeClass {
	label = strings.TrimSpace(label)
	if class, ok := classLabels[label]; ok {
		return class
	}
	return domain.SizeClass(label)
}

func censusMetadata() domain.Metadata {
	return domain.Metadata{
		Source:      "Agreste - Recensement Agricole 2020",
		Description: "Nombre d'exploitations agricoles et SAU selon classe de SAU",
		URL:         "https://agreste.agriculture.gouv.fr/",
		SauClasses: []string{
			string(domain.Class0To20), string(domain.Class20To50), string(domain.Class50To100),
			string(domain.Class100To200), string(domain.Class200Plus),
		},
		Indicators: domain.IndicatorLabels{
			NbExploitations: "Nombre d'exploitations",
			Sau:             "Superficie Agricole Utilisée (hectares)",
		},
	}
}

// ConvertCensus reads the RA 2020 "tranches de SAU" workbook.
func ConvertCensus(ctx context.Context, path string) (*domain.Census, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("excelize.OpenFile: %w", err)
	}
	defer f.Close()

	sheets := make(map[string][][]string, 3)
	for _, sheet := range []string{SheetNational, SheetRegions, SheetDepartments} {
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("GetRows, sheet-%s: %w", sheet, err)
		}
		sheets[sheet] = rows
	}

	res := &domain.Census{Metadata: censusMetadata()}

	eg := errgroup.Group{}
	eg.Go(func() (err error) {
		res.National, err = parseNational(sheets[SheetNational])
		if err != nil {
			return fmt.Errorf("sheet %s: %w", SheetNational, err)
		}
		return nil
	})
	eg.Go(func() (err error) {
		// code, name, class, farms, sau
		res.Regions, err = parseAreas(sheets[SheetRegions], func(row []string) (string, string, string) {
			return cell(row, 0), cell(row, 1), ""
		})
		if err != nil {
			return fmt.Errorf("sheet %s: %w", SheetRegions, err)
		}
		return nil
	})
	eg.Go(func() (err error) {
		// region name, code, class, farms, sau
		res.Departments, err = parseAreas(sheets[SheetDepartments], func(row []string) (string, string, string) {
			return cell(row, 1), "", cell(row, 0)
		})
		if err != nil {
			return fmt.Errorf("sheet %s: %w", SheetDepartments, err)
		}
		return nil
	})
	if err = eg.Wait(); err != nil {
		return nil, err
	}

	logger.Infof(ctx, "converted %s: %d farms, %d regions, %d departments",
		path, res.National.Total.NbExploitations, len(res.Regions), len(res.Departments))

	return res, nil
}

func parseNational(rows [][]string) (domain.National, error) {
	area := dto.NewAreaSet().GetArea("FR", "", "")

	for _, row := range window(rows, censusDataRow, censusDataRow+nationalRows) {
		if err := putRow(area, cell(row, 0), cell(row, 1), cell(row, 2)); err != nil {
			return domain.National{}, err
		}
	}

	national := area.Area()
	return domain.National{ByClass: national.ByClass, Total: national.Total}, nil
}

type labelsFunc func(row []string) (code, name, regionName string)

func parseAreas(rows [][]string, labels labelsFunc) ([]domain.Area, error) {
	set := dto.NewAreaSet()

	for _, row := range window(rows, censusDataRow, len(rows)) {
		code, name, regionName := labels(row)
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}

		area := set.GetArea(padCode(code), strings.TrimSpace(name), strings.TrimSpace(regionName))
		if err := putRow(area, cell(row, 2), cell(row, 3), cell(row, 4)); err != nil {
			return nil, err
		}
	}

	return set.Areas(), nil
}

// putRow files one class row, or the total row, into the area. Rows with a missing
// figure or no class label are skipped.
func putRow(area *dto.AreaDto, class, farms, sau string) error {
	tally, ok := parseTally(farms, sau)
	if !ok {
		return nil
	}

	class = strings.TrimSpace(class)
	switch class {
	case "":
		return nil
	case totalLabel:
		area.PutTotal(tally)
		return nil
	}

	return area.PutClass(NormalizeClass(class), tally)
}

func parseTally(farms, sau string) (domain.Tally, bool) {
	nb, err := decimal.NewFromString(strings.TrimSpace(farms))
	if err != nil {
		return domain.Tally{}, false
	}
	surface, err := decimal.NewFromString(strings.TrimSpace(sau))
	if err != nil {
		return domain.Tally{}, false
	}

	return domain.Tally{
		NbExploitations: nb.IntPart(),
		Sau:             surface.Round(2).InexactFloat64(),
	}, true
}

// padCode left-pads single-character codes to two characters ("1" -> "01").
func padCode(code string) string {
	if len(code) < 2 {
		return strings.Repeat("0", 2-len(code)) + code
	}
	return code
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func window(rows [][]string, from, to int) [][]string {
	if to > len(rows) {
		to = len(rows)
	}
	if from >= to {
		return nil
	}
	return rows[from:to]
}
