package census

import (
	"errors"
	"fmt"

	"github.com/ougirez/agreste/internal/domain"
)

var (
	ErrUnresolvedRegion = errors.New("region_name does not match exactly one region")
	ErrDuplicateCode    = errors.New("duplicate area code")
)

type IndexOpts struct {
	// AllowUnresolved keeps departments whose region_name cannot be resolved instead
	// of failing; they are simply left without a parent region.
	AllowUnresolved bool
}

// Index resolves the department → region label links of a snapshot once, so lookups
// do not go through name matching at query time.
type Index struct {
	regions     map[string]domain.Area
	departments map[string]domain.Area
	parent      map[string]string
	children    map[string][]string
}

func NewIndex(c *domain.Census, opts IndexOpts) (*Index, error) {
	idx := &Index{
		regions:     make(map[string]domain.Area, len(c.Regions)),
		departments: make(map[string]domain.Area, len(c.Departments)),
		parent:      make(map[string]string, len(c.Departments)),
		children:    make(map[string][]string, len(c.Regions)),
	}

	byName := make(map[string][]string, len(c.Regions))
	for _, r := range c.Regions {
		if _, ok := idx.regions[r.Code]; ok {
			return nil, fmt.Errorf("region %s: %w", r.Code, ErrDuplicateCode)
		}
		idx.regions[r.Code] = r
		byName[r.Name] = append(byName[r.Name], r.Code)
	}

	for _, d := range c.Departments {
		if _, ok := idx.departments[d.Code]; ok {
			return nil, fmt.Errorf("department %s: %w", d.Code, ErrDuplicateCode)
		}
		idx.departments[d.Code] = d

		codes := byName[d.RegionName]
		if len(codes) != 1 {
			if opts.AllowUnresolved {
				continue
			}
			return nil, fmt.Errorf("department %s, region_name %q: %w", d.Code, d.RegionName, ErrUnresolvedRegion)
		}

		idx.parent[d.Code] = codes[0]
		idx.children[codes[0]] = append(idx.children[codes[0]], d.Code)
	}

	return idx, nil
}

func (idx *Index) Region(code string) (domain.Area, bool) {
	r, ok := idx.regions[code]
	return r, ok
}

func (idx *Index) Department(code string) (domain.Area, bool) {
	d, ok := idx.departments[code]
	return d, ok
}

// RegionOf returns the parent region of a department.
func (idx *Index) RegionOf(deptCode string) (domain.Area, bool) {
	code, ok := idx.parent[deptCode]
	if !ok {
		return domain.Area{}, false
	}
	return idx.Region(code)
}

// DepartmentsOf returns the departments of a region in snapshot order.
func (idx *Index) DepartmentsOf(regionCode string) []domain.Area {
	codes := idx.children[regionCode]
	res := make([]domain.Area, 0, len(codes))
	for _, code := range codes {
		res = append(res, idx.departments[code])
	}
	return res
}
