package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ougirez/agreste/internal/domain"
	"github.com/ougirez/agreste/internal/pkg/cache"
	"github.com/ougirez/agreste/internal/pkg/constants"
	"github.com/ougirez/agreste/internal/pkg/utils"
	"github.com/ougirez/agreste/internal/service/census"
	"github.com/ougirez/agreste/internal/service/chart"
	"github.com/ougirez/agreste/internal/service/importer"
	"github.com/ougirez/agreste/internal/service/state"
)

func testBundle() census.Bundle {
	return census.Bundle{
		Census: &domain.Census{
			National: domain.National{Total: domain.Tally{NbExploitations: 416054, Sau: 26737089}},
			Regions: []domain.Area{
				{Code: "53", Name: "Bretagne", Total: domain.Tally{NbExploitations: 26305, Sau: 1624000},
					ByClass: domain.ClassBreakdown{domain.Class0To20: {NbExploitations: 7000, Sau: 50000}}},
				{Code: "11", Name: "Île-de-France", Total: domain.Tally{NbExploitations: 4450, Sau: 560000}},
			},
			Departments: []domain.Area{
				{Code: "29", RegionName: "Bretagne", Total: domain.Tally{NbExploitations: 5600, Sau: 390000}},
				{Code: "35", RegionName: "Bretagne", Total: domain.Tally{NbExploitations: 6200, Sau: 470000}},
				{Code: "77", RegionName: "Île-de-France", Total: domain.Tally{NbExploitations: 1900, Sau: 330000}},
			},
		},
		RegionSeries: &domain.SeriesDataset{
			National: domain.SeriesNational{SauByYear: domain.YearData{"2021": 26650000}},
			Regions: []domain.SeriesArea{
				{Code: "53", Name: "Bretagne", SauByYear: domain.YearData{"2020": 1620000, "2021": 1618000}},
				{Code: "11", Name: "Île-de-France", SauByYear: domain.YearData{"2020": 500000, "2021": 510000}},
			},
		},
		DepartmentSeries: &domain.SeriesDataset{
			Departments: []domain.SeriesArea{
				{Code: "29", Name: "Finistère", SauByYear: domain.YearData{"2016": 395000, "2021": 389000}},
			},
		},
	}
}

type nopStore struct{}

func (nopStore) Migrate(context.Context) error { return nil }
func (nopStore) SaveCensus(context.Context, *domain.Census) error { return nil }
func (nopStore) LoadCensus(context.Context) (*domain.Census, error) { return nil, constants.ErrDBNotFound }
func (nopStore) SaveSeries(context.Context, domain.Level, *domain.SeriesDataset) error {
	return nil
}
func (nopStore) LoadSeries(context.Context, domain.Level) (*domain.SeriesDataset, error) {
	return nil, constants.ErrDBNotFound
}

func newTestAPI(t *testing.T, withImporter bool) *APIService {
	t.Helper()

	svc, err := census.NewService(testBundle())
	require.NoError(t, err)

	deps := Deps{
		Census:      svc,
		Charts:      chart.NewService(chart.NewRenderer(320, 200), cache.Nop(), time.Minute),
		CorsOrigins: []string{"http://localhost:3000"},
	}
	if withImporter {
		deps.Importer = importer.NewService(nopStore{})
	}

	api, err := NewAPIService(deps)
	require.NoError(t, err)
	return api
}

func do(api *APIService, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)
	return rec
}

func get(api *APIService, target string) *httptest.ResponseRecorder {
	return do(api, httptest.NewRequest(http.MethodGet, target, nil))
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthAndRequestID(t *testing.T) {
	api := newTestAPI(t, false)

	rec := get(api, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-1")
	assert.Equal(t, "req-1", do(api, req).Header().Get("X-Request-ID"))
}

func TestGetSummary(t *testing.T) {
	api := newTestAPI(t, false)

	rec := get(api, "/api/v1/census/summary")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	summary := decode[census.Summary](t, rec)
	assert.Equal(t, [2]float64{4450, 26305}, summary.Domain)
	assert.Equal(t, "Bretagne", summary.Stats.Max.Name)

	rec = get(api, "/api/v1/census/summary?level=regions&indicator=sau&year=2021")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, [2]float64{510000, 1618000}, decode[census.Summary](t, rec).Domain)

	rec = get(api, "/api/v1/census/summary?indicator=sau&year=2021&size=%5B0%2C20%29")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[domain.ErrorResponse](t, rec)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, constants.ErrSizeFilterUnavailable.Error(), resp.Message)

	assert.Equal(t, http.StatusBadRequest, get(api, "/api/v1/census/summary?year=abc").Code)
	assert.Equal(t, http.StatusBadRequest, get(api, "/api/v1/census/summary?level=communes").Code)
}

func TestGetAreas(t *testing.T) {
	api := newTestAPI(t, false)

	rec := get(api, "/api/v1/census/areas?level=departments&indicator=sau&region=53")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	areas := decode[[]census.AreaValue](t, rec)
	require.Len(t, areas, 2)
	assert.Equal(t, "29", areas[0].Code)
	assert.Equal(t, 390000.0, areas[0].Value)

	assert.Equal(t, http.StatusNotFound, get(api, "/api/v1/census/areas?level=departments&region=99").Code)
}

func TestGetNational(t *testing.T) {
	api := newTestAPI(t, false)

	rec := get(api, "/api/v1/census/national")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(416054), decode[domain.National](t, rec).Total.NbExploitations)

	rec = get(api, "/api/v1/census/national?year=2021")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.Tally{Sau: 26650000}, decode[domain.National](t, rec).Total)
}

func TestRegionLinks(t *testing.T) {
	api := newTestAPI(t, false)

	rec := get(api, "/api/v1/regions/53/departments")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode[struct {
		Region      domain.Area   `json:"region"`
		Departments []domain.Area `json:"departments"`
	}](t, rec)
	assert.Equal(t, "Bretagne", body.Region.Name)
	assert.Len(t, body.Departments, 2)

	rec = get(api, "/api/v1/regions/99/departments")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, decode[domain.ErrorResponse](t, rec).Code)

	rec = get(api, "/api/v1/departments/77/region")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "11", decode[domain.Area](t, rec).Code)
}

func TestSeries(t *testing.T) {
	api := newTestAPI(t, false)

	rec := get(api, "/api/v1/series/departments/29")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Finistère", decode[domain.SeriesArea](t, rec).Name)

	rec = get(api, "/api/v1/series/departments/29/chart.png")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "\x89PNG"))

	assert.Equal(t, http.StatusNotFound, get(api, "/api/v1/series/regions/29").Code)
	assert.Equal(t, http.StatusBadRequest, get(api, "/api/v1/series/communes/29").Code)
	assert.Equal(t, http.StatusNotFound, get(api, "/api/v1/nowhere").Code)
}

func postJSON(api *APIService, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return do(api, req)
}

func TestPostView(t *testing.T) {
	api := newTestAPI(t, false)

	rec := postJSON(api, "/api/v1/view", `{
		"state": {"level": "regions", "indicator": "sau", "size_filter": "[0,20)", "sidebar_open": true},
		"action": {"type": "set_year", "year": 2021}
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode[struct {
		State   state.AppState  `json:"state"`
		Summary *census.Summary `json:"summary"`
	}](t, rec)
	require.NotNil(t, body.State.SelectedYear)
	assert.Equal(t, 2021, *body.State.SelectedYear)
	assert.Equal(t, domain.SizeAll, body.State.SizeFilter)
	assert.Equal(t, [2]float64{510000, 1618000}, body.Summary.Domain)

	rec = postJSON(api, "/api/v1/view", `{"action": {"type": "toggle_sidebar"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, http.StatusBadRequest, postJSON(api, "/api/v1/view", `{"state": {"level": "communes"}}`).Code)
	assert.Equal(t, http.StatusBadRequest, postJSON(api, "/api/v1/view", `{"action": `).Code)
}

func TestImportDatasets(t *testing.T) {
	viper.Set(constants.ViperSecretKey, "admin-secret")
	viper.Set(constants.ViperSigningKeyKey, "signing-key")
	t.Cleanup(func() {
		viper.Set(constants.ViperSecretKey, nil)
		viper.Set(constants.ViperSigningKeyKey, nil)
	})

	token, err := utils.GenerateAuthToken(&utils.AuthTokenWrapper{Secret: "admin-secret"}, time.Hour)
	require.NoError(t, err)
	cookie := &http.Cookie{Name: constants.CookieKeySecretToken, Value: token}

	wrong, err := utils.GenerateAuthToken(&utils.AuthTokenWrapper{Secret: "guess"}, time.Hour)
	require.NoError(t, err)

	api := newTestAPI(t, true)
	assert.Equal(t, http.StatusUnauthorized, postJSON(api, "/api/v1/datasets/import", "").Code)
	assert.Equal(t, http.StatusUnauthorized, postJSON(api, "/api/v1/datasets/import", "",
		&http.Cookie{Name: constants.CookieKeySecretToken, Value: wrong}).Code)

	rec := postJSON(api, "/api/v1/datasets/import", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[importer.Result](t, rec)
	assert.Equal(t, 2, res.Regions)
	assert.Equal(t, 3, res.Series)

	assert.Equal(t, http.StatusServiceUnavailable, postJSON(newTestAPI(t, false), "/api/v1/datasets/import", "", cookie).Code)
}
