package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ougirez/agreste/internal/domain"
)

func yearPtr(y domain.Year) *domain.Year {
	return &y
}

func TestReduce_SetLevelClearsSelection(t *testing.T) {
	s := Default()
	s.SelectedRegion = "53"
	s.SelectedDepartment = "29"

	next := Reduce(s, SetLevel(domain.LevelDepartments))

	assert.Equal(t, domain.LevelDepartments, next.Level)
	assert.Empty(t, next.SelectedRegion)
	assert.Empty(t, next.SelectedDepartment)
	assert.Equal(t, "53", s.SelectedRegion)
}

func TestReduce_YearForcesAllSizes(t *testing.T) {
	s := Reduce(Default(), SetIndicator(domain.IndicatorSau))
	s = Reduce(s, SetSizeFilter(domain.SizeFilter(domain.Class20To50)))

	next := Reduce(s, SetYear(yearPtr(2022)))
	require.NotNil(t, next.SelectedYear)
	assert.Equal(t, 2022, *next.SelectedYear)
	assert.Equal(t, domain.SizeAll, next.SizeFilter)

	back := Reduce(next, SetYear(nil))
	assert.Nil(t, back.SelectedYear)
	assert.Equal(t, domain.SizeAll, back.SizeFilter)
}

func TestReduce_FarmCountClearsYear(t *testing.T) {
	s := Reduce(Reduce(Default(), SetIndicator(domain.IndicatorSau)), SetYear(yearPtr(2018)))

	kept := Reduce(s, SetIndicator(domain.IndicatorSau))
	require.NotNil(t, kept.SelectedYear)

	next := Reduce(s, SetIndicator(domain.IndicatorFarms))
	assert.Nil(t, next.SelectedYear)
	require.NotNil(t, s.SelectedYear)
}

func TestReduce_SelectTogglesOff(t *testing.T) {
	s := Reduce(Default(), SelectRegion("53"))
	assert.Equal(t, "53", s.SelectedRegion)

	s = Reduce(s, SelectRegion("53"))
	assert.Empty(t, s.SelectedRegion)

	s = Reduce(s, SelectDepartment("29"))
	assert.Equal(t, "29", s.SelectedDepartment)
	s = Reduce(s, SelectDepartment("35"))
	assert.Equal(t, "35", s.SelectedDepartment)
	s = Reduce(s, SelectDepartment(""))
	assert.Empty(t, s.SelectedDepartment)
}

func TestReduce_ToggleSidebarAndUnknown(t *testing.T) {
	s := Default()
	assert.False(t, Reduce(s, ToggleSidebar()).SidebarOpen)
	assert.Equal(t, s, Reduce(s, Action{Type: "zoom"}))
}

func TestReduce_DoesNotAliasYear(t *testing.T) {
	s := Reduce(Default(), SetYear(yearPtr(2019)))
	next := Reduce(s, ToggleSidebar())

	*next.SelectedYear = 2024
	assert.Equal(t, 2019, *s.SelectedYear)
}

func TestAppState_Selection(t *testing.T) {
	s := Reduce(Reduce(Default(), SetIndicator(domain.IndicatorSau)), SetYear(yearPtr(2021)))
	sel := s.Selection()

	assert.Equal(t, domain.LevelRegions, sel.Level)
	assert.Equal(t, domain.IndicatorSau, sel.Indicator)
	assert.Equal(t, domain.SizeAll, sel.SizeFilter)
	require.NotNil(t, sel.Year)
	assert.Equal(t, 2021, *sel.Year)
	require.NoError(t, sel.Validate())
}
