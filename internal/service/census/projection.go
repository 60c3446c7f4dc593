package census

import "github.com/ougirez/agreste/internal/domain"

// ProjectYear builds a census-shaped snapshot for year out of the SAU series. Only
// SAU is known outside the census: farm counts are zeroed and size-class breakdowns
// are left empty, so any filter other than domain.SizeAll resolves to 0 on the result.
// Areas without a figure for the year get an SAU of 0. A nil census projects to no
// areas. Inputs are not modified.
func ProjectYear(c *domain.Census, regions, departments *domain.SeriesDataset, year domain.Year) *domain.Census {
	if c == nil {
		c = &domain.Census{}
	}
	key := domain.YearKey(year)

	projected := &domain.Census{
		Metadata: c.Metadata,
		National: domain.National{
			ByClass: domain.ClassBreakdown{},
			Total:   domain.Tally{Sau: nationalSau(regions, key)},
		},
		Regions:     projectAreas(c.Regions, seriesByCode(regions.Areas(domain.LevelRegions)), key),
		Departments: projectAreas(c.Departments, seriesByCode(departments.Areas(domain.LevelDepartments)), key),
	}

	return projected
}

func nationalSau(series *domain.SeriesDataset, key string) float64 {
	if series == nil {
		return 0
	}
	return series.National.SauByYear[key]
}

func seriesByCode(areas []domain.SeriesArea) map[string]domain.YearData {
	res := make(map[string]domain.YearData, len(areas))
	for _, a := range areas {
		res[a.Code] = a.SauByYear
	}
	return res
}

func projectAreas(areas []domain.Area, series map[string]domain.YearData, key string) []domain.Area {
	res := make([]domain.Area, 0, len(areas))
	for _, a := range areas {
		res = append(res, domain.Area{
			Code:       a.Code,
			Name:       a.Name,
			RegionName: a.RegionName,
			ByClass:    domain.ClassBreakdown{},
			Total:      domain.Tally{Sau: series[a.Code][key]},
		})
	}
	return res
}
