package dto

import (
	"fmt"
	"sync"

	"github.com/ougirez/agreste/internal/domain"
)

// AreaDto accumulates the rows of one region or department while a sheet is read.
type AreaDto struct {
	Code       string
	Name       string
	RegionName string
	ByClass    domain.ClassBreakdown
	Total      domain.Tally
	byClassMx  sync.Mutex
}

func (a *AreaDto) PutClass(class domain.SizeClass, tally domain.Tally) error {
	a.byClassMx.Lock()
	defer a.byClassMx.Unlock()

	if _, ok := a.ByClass[class]; ok {
		return fmt.Errorf("area %s: class %s seen twice", a.Code, class)
	}

	a.ByClass[class] = tally
	return nil
}

func (a *AreaDto) PutTotal(tally domain.Tally) {
	a.byClassMx.Lock()
	defer a.byClassMx.Unlock()

	a.Total = tally
}

func (a *AreaDto) Area() domain.Area {
	a.byClassMx.Lock()
	defer a.byClassMx.Unlock()

	byClass := make(domain.ClassBreakdown, len(a.ByClass))
	for class, tally := range a.ByClass {
		byClass[class] = tally
	}

	return domain.Area{
		Code:       a.Code,
		Name:       a.Name,
		RegionName: a.RegionName,
		ByClass:    byClass,
		Total:      a.Total,
	}
}

// AreaSet keeps areas in the order their code was first seen.
type AreaSet struct {
	areas   map[string]*AreaDto
	order   []string
	areasMx sync.Mutex
}

func NewAreaSet() *AreaSet {
	return &AreaSet{areas: make(map[string]*AreaDto)}
}

// GetArea returns the area for code, creating it with the given labels on first use.
func (s *AreaSet) GetArea(code, name, regionName string) *AreaDto {
	s.areasMx.Lock()
	defer s.areasMx.Unlock()

	area, ok := s.areas[code]
	if !ok {
		area = &AreaDto{
			Code:       code,
			Name:       name,
			RegionName: regionName,
			ByClass:    make(domain.ClassBreakdown),
		}
		s.areas[code] = area
		s.order = append(s.order, code)
	}

	return area
}

func (s *AreaSet) Areas() []domain.Area {
	s.areasMx.Lock()
	defer s.areasMx.Unlock()

	res := make([]domain.Area, 0, len(s.order))
	for _, code := range s.order {
		res = append(res, s.areas[code].Area())
	}
	return res
}
