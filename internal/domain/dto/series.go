package dto

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/ougirez/agreste/internal/domain"
)

type SeriesDto struct {
	Code       string
	Name       string
	YearData   map[domain.Year]decimal.Decimal
	yearDataMx sync.Mutex
}

func (s *SeriesDto) PutData(year domain.Year, value decimal.Decimal) error {
	s.yearDataMx.Lock()
	defer s.yearDataMx.Unlock()

	if _, ok := s.YearData[year]; ok {
		return fmt.Errorf("series %s: year %d seen twice", s.Code, year)
	}

	s.YearData[year] = value
	return nil
}

// SeriesSet collects per-area series and sums them into the national series.
type SeriesSet struct {
	series   map[string]*SeriesDto
	order    []string
	national map[domain.Year]decimal.Decimal
	seriesMx sync.Mutex
}

// NewSeriesSet starts the national sums at zero for every year.
func NewSeriesSet(years []domain.Year) *SeriesSet {
	national := make(map[domain.Year]decimal.Decimal, len(years))
	for _, y := range years {
		national[y] = decimal.Zero
	}
	return &SeriesSet{series: make(map[string]*SeriesDto), national: national}
}

func (s *SeriesSet) GetSeries(code, name string) *SeriesDto {
	s.seriesMx.Lock()
	defer s.seriesMx.Unlock()

	series, ok := s.series[code]
	if !ok {
		series = &SeriesDto{
			Code:     code,
			Name:     name,
			YearData: make(map[domain.Year]decimal.Decimal),
		}
		s.series[code] = series
		s.order = append(s.order, code)
	}

	return series
}

func (s *SeriesSet) AddNational(year domain.Year, value decimal.Decimal) {
	s.seriesMx.Lock()
	defer s.seriesMx.Unlock()

	s.national[year] = s.national[year].Add(value)
}

// Areas returns the series with at least one published year, values rounded to 2 places.
func (s *SeriesSet) Areas() []domain.SeriesArea {
	s.seriesMx.Lock()
	defer s.seriesMx.Unlock()

	res := make([]domain.SeriesArea, 0, len(s.order))
	for _, code := range s.order {
		series := s.series[code]
		if len(series.YearData) == 0 {
			continue
		}
		res = append(res, domain.SeriesArea{
			Code:      series.Code,
			Name:      series.Name,
			SauByYear: toYearData(series.YearData),
		})
	}
	return res
}

func (s *SeriesSet) National() domain.SeriesNational {
	s.seriesMx.Lock()
	defer s.seriesMx.Unlock()

	return domain.SeriesNational{SauByYear: toYearData(s.national)}
}

func toYearData(values map[domain.Year]decimal.Decimal) domain.YearData {
	res := make(domain.YearData, len(values))
	for year, v := range values {
		res[domain.YearKey(year)] = v.Round(2).InexactFloat64()
	}
	return res
}
