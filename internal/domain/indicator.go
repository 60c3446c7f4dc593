package domain

type Indicator string

const (
	IndicatorFarms Indicator = "nb_exploitations"
	IndicatorSau   Indicator = "sau"
)

func (i Indicator) Valid() bool {
	return i == IndicatorFarms || i == IndicatorSau
}

type Level string

const (
	LevelRegions     Level = "regions"
	LevelDepartments Level = "departments"
)

func (l Level) Valid() bool {
	return l == LevelRegions || l == LevelDepartments
}

// SizeClass is a farm-size bucket over SAU in hectares, half-open on the right.
type SizeClass string

const (
	Class0To20    SizeClass = "[0,20)"
	Class20To50   SizeClass = "[20,50)"
	Class50To100  SizeClass = "[50,100)"
	Class100To200 SizeClass = "[100,200)"
	Class200Plus  SizeClass = "[200+)"
	// Class0To50 is the merged bucket some departments are still published with.
	Class0To50 SizeClass = "[0,50)"
)

// SizeClasses lists every class label in display order, legacy bucket last.
func SizeClasses() []SizeClass {
	return []SizeClass{Class0To20, Class20To50, Class50To100, Class100To200, Class200Plus, Class0To50}
}

func (c SizeClass) Valid() bool {
	for _, known := range SizeClasses() {
		if c == known {
			return true
		}
	}
	return false
}

// SizeFilter is either SizeAll or one SizeClass label.
type SizeFilter string

const SizeAll SizeFilter = "all"

// Class returns the size class the filter selects; false for SizeAll.
func (f SizeFilter) Class() (SizeClass, bool) {
	if f == SizeAll {
		return "", false
	}
	return SizeClass(f), true
}

func (f SizeFilter) Valid() bool {
	return f == SizeAll || SizeClass(f).Valid()
}
