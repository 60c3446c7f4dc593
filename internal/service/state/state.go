package state

import (
	"github.com/ougirez/agreste/internal/domain"
	"github.com/ougirez/agreste/internal/service/census"
)

// AppState is the dashboard's UI selection. Values are never mutated in place:
// Reduce returns a new state.
type AppState struct {
	Level              domain.Level      `json:"level" validate:"required,oneof=regions departments"`
	Indicator          domain.Indicator  `json:"indicator" validate:"required,oneof=nb_exploitations sau"`
	SizeFilter         domain.SizeFilter `json:"size_filter" validate:"required"`
	SelectedYear       *domain.Year      `json:"selected_year,omitempty" validate:"omitempty,gte=2016,lte=2024"`
	SelectedRegion     string            `json:"selected_region,omitempty"`
	SelectedDepartment string            `json:"selected_department,omitempty"`
	SidebarOpen        bool              `json:"sidebar_open"`
}

func Default() AppState {
	return AppState{
		Level:       domain.LevelRegions,
		Indicator:   domain.IndicatorFarms,
		SizeFilter:  domain.SizeAll,
		SidebarOpen: true,
	}
}

// Selection returns the part of the state the census computations depend on.
func (s AppState) Selection() census.Selection {
	sel := census.Selection{
		Level:      s.Level,
		Indicator:  s.Indicator,
		SizeFilter: s.SizeFilter,
	}
	if s.SelectedYear != nil {
		y := *s.SelectedYear
		sel.Year = &y
	}
	return sel
}

type ActionType string

const (
	ActionSetLevel         ActionType = "set_level"
	ActionSetIndicator     ActionType = "set_indicator"
	ActionSetYear          ActionType = "set_year"
	ActionSetSizeFilter    ActionType = "set_size_filter"
	ActionSelectRegion     ActionType = "select_region"
	ActionSelectDepartment ActionType = "select_department"
	ActionToggleSidebar    ActionType = "toggle_sidebar"
)

// Action is a state transition. Only the field matching Type is read.
type Action struct {
	Type       ActionType        `json:"type" validate:"required"`
	Level      domain.Level      `json:"level,omitempty"`
	Indicator  domain.Indicator  `json:"indicator,omitempty"`
	Year       *domain.Year      `json:"year,omitempty"`
	SizeFilter domain.SizeFilter `json:"size_filter,omitempty"`
	Code       string            `json:"code,omitempty"`
}

func SetLevel(level domain.Level) Action {
	return Action{Type: ActionSetLevel, Level: level}
}

func SetIndicator(indicator domain.Indicator) Action {
	return Action{Type: ActionSetIndicator, Indicator: indicator}
}

// SetYear selects a year of the SAU series; nil goes back to the census snapshot.
func SetYear(year *domain.Year) Action {
	return Action{Type: ActionSetYear, Year: year}
}

func SetSizeFilter(filter domain.SizeFilter) Action {
	return Action{Type: ActionSetSizeFilter, SizeFilter: filter}
}

// SelectRegion toggles the drill-down region; an empty code clears it.
func SelectRegion(code string) Action {
	return Action{Type: ActionSelectRegion, Code: code}
}

func SelectDepartment(code string) Action {
	return Action{Type: ActionSelectDepartment, Code: code}
}

func ToggleSidebar() Action {
	return Action{Type: ActionToggleSidebar}
}

// Reduce applies a to s. Unknown actions return s unchanged.
func Reduce(s AppState, a Action) AppState {
	next := s
	if s.SelectedYear != nil {
		y := *s.SelectedYear
		next.SelectedYear = &y
	}

	switch a.Type {
	case ActionSetLevel:
		next.Level = a.Level
		next.SelectedRegion = ""
		next.SelectedDepartment = ""
	case ActionSetIndicator:
		next.Indicator = a.Indicator
		// the yearly series only carry SAU
		if a.Indicator == domain.IndicatorFarms {
			next.SelectedYear = nil
		}
	case ActionSetYear:
		if a.Year == nil {
			next.SelectedYear = nil
			break
		}
		y := *a.Year
		next.SelectedYear = &y
		next.SizeFilter = domain.SizeAll
	case ActionSetSizeFilter:
		next.SizeFilter = a.SizeFilter
	case ActionSelectRegion:
		if a.Code == s.SelectedRegion {
			next.SelectedRegion = ""
		} else {
			next.SelectedRegion = a.Code
		}
	case ActionSelectDepartment:
		if a.Code == s.SelectedDepartment {
			next.SelectedDepartment = ""
		} else {
			next.SelectedDepartment = a.Code
		}
	case ActionToggleSidebar:
		next.SidebarOpen = !s.SidebarOpen
	}

	return next
}
