package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/ougirez/agreste/internal/api/controller"
	"github.com/ougirez/agreste/internal/pkg/logger"
	"github.com/ougirez/agreste/internal/pkg/metrics"
	"github.com/ougirez/agreste/internal/service/census"
	"github.com/ougirez/agreste/internal/service/chart"
	"github.com/ougirez/agreste/internal/service/importer"
)

type APIService struct {
	router        *echo.Echo
	censusService *census.Service
	chartService  *chart.Service
	importService *importer.Service
}

// Deps are the services the API is served from. Importer may be nil when no database
// is configured.
type Deps struct {
	Census      *census.Service
	Charts      *chart.Service
	Importer    *importer.Service
	CorsOrigins []string
	Debug       bool
}

func (svc *APIService) Serve(addr string) {
	if err := svc.router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal(context.Background(), err)
	}
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func (svc *APIService) Router() *echo.Echo {
	return svc.router
}

func NewAPIService(deps Deps) (*APIService, error) {
	svc := &APIService{
		router:        echo.New(),
		censusService: deps.Census,
		chartService:  deps.Charts,
		importService: deps.Importer,
	}

	svc.router.HideBanner = true
	svc.router.Logger.SetLevel(log.WARN)
	if deps.Debug {
		svc.router.Logger.SetLevel(log.DEBUG)
	}

	svc.router.JSONSerializer = NewJSONSerializer()
	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.HTTPErrorHandler = httpErrorHandler
	svc.router.Use(middleware.Recover())
	svc.router.Use(RequestIDMiddleware)
	svc.router.Use(middleware.Logger())
	svc.router.Use(metrics.Middleware())
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     deps.CorsOrigins,
		AllowMethods:     []string{echo.GET, echo.POST},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	svc.router.GET("/health", controller.Health)
	svc.router.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	api := svc.router.Group("/api/v1")
	cntrl := controller.NewController(svc.censusService, svc.chartService, svc.importService)

	censusGroup := api.Group("/census")
	censusGroup.GET("/summary", cntrl.GetSummary)
	censusGroup.GET("/areas", cntrl.GetAreas)
	censusGroup.GET("/national", cntrl.GetNational)

	regions := api.Group("/regions")
	regions.GET("/:code/departments", cntrl.GetDepartmentsOfRegion)

	departments := api.Group("/departments")
	departments.GET("/:code/region", cntrl.GetRegionOfDepartment)

	series := api.Group("/series")
	series.GET("/:level/:code", cntrl.GetSeries)
	series.GET("/:level/:code/chart.png", cntrl.GetSeriesChart)

	api.POST("/view", cntrl.PostView)

	datasets := api.Group("/datasets")
	datasets.POST("/import", cntrl.ImportDatasets, svc.AdminMiddleware)

	return svc, nil
}
