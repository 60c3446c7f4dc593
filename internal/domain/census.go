package domain

import "strconv"

type Year = int

// YearData maps a year, keyed as in the published JSON ("2021"), to an SAU figure.
type YearData = map[string]float64

const (
	FirstYear  Year = 2016
	LastYear   Year = 2024
	CensusYear Year = 2020
)

func YearKey(year Year) string {
	return strconv.Itoa(year)
}

// Years lists the years covered by the multi-year SAU series, ascending.
func Years() []Year {
	years := make([]Year, 0, LastYear-FirstYear+1)
	for y := FirstYear; y <= LastYear; y++ {
		years = append(years, y)
	}
	return years
}

func ValidYear(year Year) bool {
	return year >= FirstYear && year <= LastYear
}

// Tally is the pair of figures published for every area and size class.
type Tally struct {
	NbExploitations int64   `json:"nb_exploitations" validate:"gte=0"`
	Sau             float64 `json:"sau" validate:"gte=0"`
}

// Value returns the figure for the given indicator. Unknown indicators yield 0.
func (t Tally) Value(indicator Indicator) float64 {
	switch indicator {
	case IndicatorFarms:
		return float64(t.NbExploitations)
	case IndicatorSau:
		return t.Sau
	}
	return 0
}

// ClassBreakdown is the partial size-class mapping of an area. A missing key means
// the class was not published for the area, which is not the same thing as zero.
type ClassBreakdown map[SizeClass]Tally

func (b ClassBreakdown) Lookup(class SizeClass) (Tally, bool) {
	t, ok := b[class]
	return t, ok
}

// Area is a region or a department record of the census snapshot. Regions carry Name,
// departments carry RegionName, a label pointing at the parent region's Name.
type Area struct {
	Code       string         `json:"code" validate:"required"`
	Name       string         `json:"name,omitempty"`
	RegionName string         `json:"region_name,omitempty"`
	ByClass    ClassBreakdown `json:"by_class"`
	Total      Tally          `json:"total"`
}

// DisplayName is the area's name, or its code for records without one (departments).
func (a Area) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Code
}

type National struct {
	ByClass ClassBreakdown `json:"by_class"`
	Total   Tally          `json:"total"`
}

type IndicatorLabels struct {
	NbExploitations string `json:"nb_exploitations"`
	Sau             string `json:"sau"`
}

type Metadata struct {
	Source      string          `json:"source"`
	Description string          `json:"description"`
	URL         string          `json:"url"`
	SauClasses  []string        `json:"sau_classes"`
	Indicators  IndicatorLabels `json:"indicators"`
}

// Census is the census-year snapshot (RA 2020) or a snapshot projected to another year.
type Census struct {
	Metadata    Metadata `json:"metadata"`
	National    National `json:"national"`
	Regions     []Area   `json:"regions" validate:"dive"`
	Departments []Area   `json:"departments" validate:"dive"`
}

// Areas returns the collection for the level; unknown levels yield nil.
func (c *Census) Areas(level Level) []Area {
	switch level {
	case LevelRegions:
		return c.Regions
	case LevelDepartments:
		return c.Departments
	}
	return nil
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}
