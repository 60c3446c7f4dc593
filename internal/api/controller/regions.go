package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ougirez/agreste/internal/domain"
)

func (c *Controller) GetDepartmentsOfRegion(ctx echo.Context) error {
	code := ctx.Param("code")

	type response struct {
		Region      domain.Area   `json:"region"`
		Departments []domain.Area `json:"departments"`
	}

	var (
		resp response
		err  error
	)

	resp.Region, err = c.census.Region(code)
	if err != nil {
		return err
	}

	resp.Departments, err = c.census.DepartmentsOf(code)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, resp)
}

func (c *Controller) GetRegionOfDepartment(ctx echo.Context) error {
	region, err := c.census.RegionOf(ctx.Param("code"))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, region)
}
