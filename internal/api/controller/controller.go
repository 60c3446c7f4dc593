package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ougirez/agreste/internal/service/census"
	"github.com/ougirez/agreste/internal/service/chart"
	"github.com/ougirez/agreste/internal/service/importer"
)

type Controller struct {
	census   *census.Service
	charts   *chart.Service
	importer *importer.Service
}

func NewController(census *census.Service, charts *chart.Service, importer *importer.Service) *Controller {
	return &Controller{census: census, charts: charts, importer: importer}
}

func Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
