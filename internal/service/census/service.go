package census

import (
	"fmt"
	"sync"

	"github.com/ougirez/agreste/internal/domain"
	"github.com/ougirez/agreste/internal/pkg/constants"
	"github.com/ougirez/agreste/internal/pkg/metrics"
)

// Bundle holds the three datasets the dashboard is built from.
type Bundle struct {
	Census           *domain.Census
	RegionSeries     *domain.SeriesDataset
	DepartmentSeries *domain.SeriesDataset
}

// Selection is what the user picked: a nil Year means the census snapshot.
type Selection struct {
	Level      domain.Level      `json:"level"`
	Indicator  domain.Indicator  `json:"indicator"`
	SizeFilter domain.SizeFilter `json:"size"`
	Year       *domain.Year      `json:"year,omitempty"`
}

// Validate rejects unknown values, and any size-class filter combined with a year:
// projected snapshots have no size-class breakdown.
func (s Selection) Validate() error {
	if !s.Level.Valid() {
		return fmt.Errorf("%w: unknown level %q", constants.ErrBadRequest, s.Level)
	}
	if !s.Indicator.Valid() {
		return fmt.Errorf("%w: unknown indicator %q", constants.ErrBadRequest, s.Indicator)
	}
	if !s.SizeFilter.Valid() {
		return fmt.Errorf("%w: unknown size filter %q", constants.ErrBadRequest, s.SizeFilter)
	}
	if s.Year != nil {
		if !domain.ValidYear(*s.Year) {
			return fmt.Errorf("%w: year %d outside %d-%d", constants.ErrBadRequest, *s.Year, domain.FirstYear, domain.LastYear)
		}
		if s.SizeFilter != domain.SizeAll {
			return constants.ErrSizeFilterUnavailable
		}
	}
	return nil
}

type Summary struct {
	Domain [2]float64 `json:"domain"`
	Stats  Stats      `json:"stats"`
}

// AreaValue is what the map needs per area: the fill value and the tooltip figures.
type AreaValue struct {
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	Value           float64 `json:"value"`
	NbExploitations float64 `json:"nb_exploitations"`
	Sau             float64 `json:"sau"`
}

type snapshot struct {
	census *domain.Census
	index  *Index
}

type Service struct {
	bundle Bundle
	census snapshot

	projectionsMx sync.Mutex
	projections   map[domain.Year]snapshot
}

func NewService(bundle Bundle) (*Service, error) {
	if bundle.Census == nil {
		return nil, constants.ErrDatasetNotLoaded
	}

	idx, err := NewIndex(bundle.Census, IndexOpts{})
	if err != nil {
		return nil, fmt.Errorf("NewIndex: %w", err)
	}

	return &Service{
		bundle:      bundle,
		census:      snapshot{census: bundle.Census, index: idx},
		projections: make(map[domain.Year]snapshot),
	}, nil
}

func (s *Service) Bundle() Bundle {
	return s.bundle
}

func (s *Service) snapshot(year *domain.Year) (snapshot, error) {
	if year == nil {
		return s.census, nil
	}
	if !domain.ValidYear(*year) {
		return snapshot{}, fmt.Errorf("%w: year %d outside %d-%d", constants.ErrBadRequest, *year, domain.FirstYear, domain.LastYear)
	}

	s.projectionsMx.Lock()
	defer s.projectionsMx.Unlock()

	if snap, ok := s.projections[*year]; ok {
		return snap, nil
	}

	projected := ProjectYear(s.bundle.Census, s.bundle.RegionSeries, s.bundle.DepartmentSeries, *year)
	idx, err := NewIndex(projected, IndexOpts{AllowUnresolved: true})
	if err != nil {
		return snapshot{}, fmt.Errorf("NewIndex, year-%d: %w", *year, err)
	}

	snap := snapshot{census: projected, index: idx}
	s.projections[*year] = snap
	metrics.ProjectionsTotal.Inc()
	return snap, nil
}

// Snapshot returns the census snapshot, or its projection when year is set.
func (s *Service) Snapshot(year *domain.Year) (*domain.Census, error) {
	snap, err := s.snapshot(year)
	if err != nil {
		return nil, err
	}
	return snap.census, nil
}

func (s *Service) Summary(sel Selection) (*Summary, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	snap, err := s.snapshot(sel.Year)
	if err != nil {
		return nil, err
	}

	lo, hi := ComputeRange(snap.census, sel.Level, sel.Indicator, sel.SizeFilter)
	return &Summary{
		Domain: [2]float64{lo, hi},
		Stats:  ComputeStats(snap.census, sel.Level, sel.Indicator, sel.SizeFilter),
	}, nil
}

// Areas resolves every area of the selected level. A non-empty regionCode restricts
// the departments level to that region (drill-down).
func (s *Service) Areas(sel Selection, regionCode string) ([]AreaValue, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	snap, err := s.snapshot(sel.Year)
	if err != nil {
		return nil, err
	}

	areas := snap.census.Areas(sel.Level)
	if regionCode != "" {
		if sel.Level != domain.LevelDepartments {
			return nil, fmt.Errorf("%w: region filter requires level=%s", constants.ErrBadRequest, domain.LevelDepartments)
		}
		if _, ok := snap.index.Region(regionCode); !ok {
			return nil, fmt.Errorf("region %s: %w", regionCode, constants.ErrNotFound)
		}
		areas = snap.index.DepartmentsOf(regionCode)
	}

	res := make([]AreaValue, 0, len(areas))
	for _, a := range areas {
		res = append(res, AreaValue{
			Code:            a.Code,
			Name:            a.DisplayName(),
			Value:           ResolveValue(a, sel.Indicator, sel.SizeFilter),
			NbExploitations: ResolveValue(a, domain.IndicatorFarms, sel.SizeFilter),
			Sau:             ResolveValue(a, domain.IndicatorSau, sel.SizeFilter),
		})
	}
	return res, nil
}

func (s *Service) National(year *domain.Year) (domain.National, error) {
	snap, err := s.snapshot(year)
	if err != nil {
		return domain.National{}, err
	}
	return snap.census.National, nil
}

func (s *Service) Region(code string) (domain.Area, error) {
	r, ok := s.census.index.Region(code)
	if !ok {
		return domain.Area{}, fmt.Errorf("region %s: %w", code, constants.ErrNotFound)
	}
	return r, nil
}

func (s *Service) DepartmentsOf(regionCode string) ([]domain.Area, error) {
	if _, ok := s.census.index.Region(regionCode); !ok {
		return nil, fmt.Errorf("region %s: %w", regionCode, constants.ErrNotFound)
	}
	return s.census.index.DepartmentsOf(regionCode), nil
}

func (s *Service) RegionOf(deptCode string) (domain.Area, error) {
	if _, ok := s.census.index.Department(deptCode); !ok {
		return domain.Area{}, fmt.Errorf("department %s: %w", deptCode, constants.ErrNotFound)
	}
	r, ok := s.census.index.RegionOf(deptCode)
	if !ok {
		return domain.Area{}, fmt.Errorf("region of department %s: %w", deptCode, constants.ErrNotFound)
	}
	return r, nil
}

// Series returns the multi-year SAU series of one region or department.
func (s *Service) Series(level domain.Level, code string) (domain.SeriesArea, error) {
	var dataset *domain.SeriesDataset
	switch level {
	case domain.LevelRegions:
		dataset = s.bundle.RegionSeries
	case domain.LevelDepartments:
		dataset = s.bundle.DepartmentSeries
	default:
		return domain.SeriesArea{}, fmt.Errorf("%w: unknown level %q", constants.ErrBadRequest, level)
	}

	area, ok := dataset.Find(level, code)
	if !ok {
		return domain.SeriesArea{}, fmt.Errorf("series %s/%s: %w", level, code, constants.ErrNotFound)
	}
	return area, nil
}
