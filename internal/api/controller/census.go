package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ougirez/agreste/internal/domain"
	"github.com/ougirez/agreste/internal/pkg/constants"
	"github.com/ougirez/agreste/internal/service/census"
)

// parseYear reads an optional year query parameter; absent means the census snapshot.
func parseYear(ctx echo.Context) (*domain.Year, error) {
	raw := ctx.QueryParams().Get("year")
	if raw == "" {
		return nil, nil
	}

	year, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: year %q", constants.ErrBadRequest, raw)
	}
	return &year, nil
}

func parseSelection(ctx echo.Context) (census.Selection, error) {
	params := ctx.QueryParams()

	sel := census.Selection{
		Level:      domain.LevelRegions,
		Indicator:  domain.IndicatorFarms,
		SizeFilter: domain.SizeAll,
	}
	if level := params.Get("level"); level != "" {
		sel.Level = domain.Level(level)
	}
	if indicator := params.Get("indicator"); indicator != "" {
		sel.Indicator = domain.Indicator(indicator)
	}
	if size := params.Get("size"); size != "" {
		sel.SizeFilter = domain.SizeFilter(size)
	}

	year, err := parseYear(ctx)
	if err != nil {
		return census.Selection{}, err
	}
	sel.Year = year

	return sel, nil
}

func (c *Controller) GetSummary(ctx echo.Context) error {
	sel, err := parseSelection(ctx)
	if err != nil {
		return err
	}

	summary, err := c.census.Summary(sel)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, summary)
}

func (c *Controller) GetAreas(ctx echo.Context) error {
	sel, err := parseSelection(ctx)
	if err != nil {
		return err
	}

	areas, err := c.census.Areas(sel, ctx.QueryParams().Get("region"))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, areas)
}

func (c *Controller) GetNational(ctx echo.Context) error {
	year, err := parseYear(ctx)
	if err != nil {
		return err
	}

	national, err := c.census.National(year)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, national)
}
