package census

import "github.com/ougirez/agreste/internal/domain"

// NoDataName labels the min/max entries of empty statistics.
const NoDataName = "-"

type NamedValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type Stats struct {
	Total   float64    `json:"total"`
	Average float64    `json:"average"`
	Min     NamedValue `json:"min"`
	Max     NamedValue `json:"max"`
	Count   int        `json:"count"`
}

func emptyStats() Stats {
	return Stats{
		Min: NamedValue{Name: NoDataName},
		Max: NamedValue{Name: NoDataName},
	}
}

// positiveValues resolves every area of the level and keeps the strictly positive
// values, in collection order. Zero and negative values mean "no data".
func positiveValues(c *domain.Census, level domain.Level, indicator domain.Indicator, filter domain.SizeFilter) []NamedValue {
	if c == nil {
		return nil
	}

	areas := c.Areas(level)
	values := make([]NamedValue, 0, len(areas))
	for _, area := range areas {
		v := ResolveValue(area, indicator, filter)
		if v <= 0 {
			continue
		}
		values = append(values, NamedValue{Name: area.DisplayName(), Value: v})
	}
	return values
}

// ComputeRange returns the color-scale domain over the positive values of the level,
// or (0, 1) when no area has data.
func ComputeRange(c *domain.Census, level domain.Level, indicator domain.Indicator, filter domain.SizeFilter) (float64, float64) {
	values := positiveValues(c, level, indicator, filter)
	if len(values) == 0 {
		return 0, 1
	}

	lo, hi := values[0].Value, values[0].Value
	for _, v := range values[1:] {
		if v.Value < lo {
			lo = v.Value
		}
		if v.Value > hi {
			hi = v.Value
		}
	}
	return lo, hi
}

// ComputeStats aggregates the positive values of the level. Ties for min and max go
// to the first area in collection order.
func ComputeStats(c *domain.Census, level domain.Level, indicator domain.Indicator, filter domain.SizeFilter) Stats {
	values := positiveValues(c, level, indicator, filter)
	if len(values) == 0 {
		return emptyStats()
	}

	stats := Stats{Min: values[0], Max: values[0], Count: len(values)}
	for _, v := range values {
		stats.Total += v.Value
		if v.Value < stats.Min.Value {
			stats.Min = v
		}
		if v.Value > stats.Max.Value {
			stats.Max = v
		}
	}
	stats.Average = stats.Total / float64(stats.Count)

	return stats
}
