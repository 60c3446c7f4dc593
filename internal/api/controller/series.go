package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ougirez/agreste/internal/domain"
)

func (c *Controller) GetSeries(ctx echo.Context) error {
	series, err := c.census.Series(domain.Level(ctx.Param("level")), ctx.Param("code"))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, series)
}

func (c *Controller) GetSeriesChart(ctx echo.Context) error {
	level := domain.Level(ctx.Param("level"))

	series, err := c.census.Series(level, ctx.Param("code"))
	if err != nil {
		return err
	}

	data, err := c.charts.Chart(ctx.Request().Context(), level, series)
	if err != nil {
		return err
	}

	ctx.Response().Header().Set("Cache-Control", "public, max-age=3600")
	return ctx.Blob(http.StatusOK, "image/png", data)
}
