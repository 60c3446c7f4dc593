package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ougirez/agreste/internal/pkg/constants"
)

func (c *Controller) ImportDatasets(ctx echo.Context) error {
	if c.importer == nil {
		return constants.ErrNoDatabase
	}

	res, err := c.importer.Import(ctx.Request().Context(), c.census.Bundle())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, res)
}
