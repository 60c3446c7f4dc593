package domain

// SeriesArea is one region or department of the annual SAU statistics (SAA).
type SeriesArea struct {
	Code      string   `json:"code" validate:"required"`
	Name      string   `json:"name"`
	SauByYear YearData `json:"sau_by_year"`
}

// Sau returns the area's SAU for the year and whether the year was published.
func (a SeriesArea) Sau(year Year) (float64, bool) {
	v, ok := a.SauByYear[YearKey(year)]
	return v, ok
}

type SeriesNational struct {
	SauByYear YearData `json:"sau_by_year"`
}

type SeriesMetadata struct {
	Source      string `json:"source"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Years       []Year `json:"years"`
	Unit        string `json:"unit"`
	Note        string `json:"note,omitempty"`
}

// SeriesDataset is either the regional or the departmental SAU series document;
// only the collection matching its level is populated.
type SeriesDataset struct {
	Metadata    SeriesMetadata `json:"metadata"`
	National    SeriesNational `json:"national"`
	Regions     []SeriesArea   `json:"regions,omitempty" validate:"dive"`
	Departments []SeriesArea   `json:"departments,omitempty" validate:"dive"`
}

func (d *SeriesDataset) Areas(level Level) []SeriesArea {
	if d == nil {
		return nil
	}
	switch level {
	case LevelRegions:
		return d.Regions
	case LevelDepartments:
		return d.Departments
	}
	return nil
}

// Find returns the series of the area with the given code.
func (d *SeriesDataset) Find(level Level, code string) (SeriesArea, bool) {
	for _, a := range d.Areas(level) {
		if a.Code == code {
			return a, true
		}
	}
	return SeriesArea{}, false
}
