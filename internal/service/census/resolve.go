package census

import "github.com/ougirez/agreste/internal/domain"

// ResolveValue returns the area's figure for the indicator, restricted to one size
// class unless the filter is domain.SizeAll. A class the area does not publish counts
// as 0.
func ResolveValue(area domain.Area, indicator domain.Indicator, filter domain.SizeFilter) float64 {
	class, ok := filter.Class()
	if !ok {
		return area.Total.Value(indicator)
	}

	tally, ok := area.ByClass.Lookup(class)
	if !ok {
		return 0
	}
	return tally.Value(indicator)
}
