package chart

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ougirez/agreste/internal/domain"
	"github.com/ougirez/agreste/internal/pkg/constants"
)

var finistere = domain.SeriesArea{
	Code: "29",
	Name: "Finistère",
	SauByYear: domain.YearData{
		"2018": 392000, "2016": 395000, "2017": 394000, "total": 1,
	},
}

func TestPoints(t *testing.T) {
	assert.Equal(t, []Point{{2016, 395000}, {2017, 394000}, {2018, 392000}}, Points(finistere))
	assert.Empty(t, Points(domain.SeriesArea{}))
}

func TestYDomain(t *testing.T) {
	lo, hi := YDomain(Points(finistere))
	assert.InDelta(t, 391700, lo, 1e-6)
	assert.InDelta(t, 395300, hi, 1e-6)

	lo, hi = YDomain([]Point{{2016, 1000}, {2017, 1000}})
	assert.InDelta(t, 950, lo, 1e-9)
	assert.InDelta(t, 1050, hi, 1e-9)

	lo, hi = YDomain([]Point{{2016, 0}})
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)

	lo, hi = YDomain(nil)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "SAU - Finistère (2016-2024)", Title(finistere))
}

func TestTicks(t *testing.T) {
	years := yearTicks{}.Ticks(2015.5, 2018)
	require.Len(t, years, 3)
	assert.Equal(t, "2016", years[0].Label)
	assert.Equal(t, "2018", years[2].Label)

	for _, tick := range (hectareTicks{}).Ticks(390000, 396000) {
		if tick.Label != "" {
			assert.Contains(t, tick.Label, "k ha")
		}
	}
}

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer(640, 360)

	data, err := r.Render(finistere)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.InDelta(t, 640, img.Bounds().Dx(), 1)
	assert.InDelta(t, 360, img.Bounds().Dy(), 1)

	single, err := r.Render(domain.SeriesArea{Code: "971", Name: "Guadeloupe", SauByYear: domain.YearData{"2020": 31000}})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(single, []byte("\x89PNG")))

	_, err = r.Render(domain.SeriesArea{Code: "75"})
	assert.ErrorIs(t, err, constants.ErrNotFound)
}

type memCache struct {
	mx     sync.Mutex
	data   map[string][]byte
	gets   int
	getErr error
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mx.Lock()
	defer m.mx.Unlock()
	m.gets++
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mx.Lock()
	defer m.mx.Unlock()
	m.data[key] = value
	return nil
}

func TestService_Chart(t *testing.T) {
	ctx := context.Background()
	mc := &memCache{data: map[string][]byte{}}
	svc := NewService(NewRenderer(320, 200), mc, time.Minute)

	first, err := svc.Chart(ctx, domain.LevelDepartments, finistere)
	require.NoError(t, err)
	require.Len(t, mc.data, 1)
	for key := range mc.data {
		assert.Contains(t, key, "chart:departments:29:")
	}

	mc.data[svc.key(domain.LevelDepartments, finistere)] = []byte("cached")
	second, err := svc.Chart(ctx, domain.LevelDepartments, finistere)
	require.NoError(t, err)
	assert.Equal(t, []byte("cached"), second)
	assert.NotEqual(t, first, second)

	mc.getErr = errors.New("redis down")
	third, err := svc.Chart(ctx, domain.LevelDepartments, finistere)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(third, []byte("\x89PNG")))

	_, err = NewService(NewRenderer(320, 200), nil, time.Minute).Chart(ctx, domain.LevelRegions, domain.SeriesArea{Code: "53"})
	assert.ErrorIs(t, err, constants.ErrNotFound)
}

func TestService_ChartKeyFollowsData(t *testing.T) {
	ctx := context.Background()
	mc := &memCache{data: map[string][]byte{}}
	svc := NewService(NewRenderer(320, 200), mc, time.Minute)

	mc.data[svc.key(domain.LevelDepartments, finistere)] = []byte("cached")

	corrected := domain.SeriesArea{Code: finistere.Code, Name: finistere.Name, SauByYear: domain.YearData{}}
	for k, v := range finistere.SauByYear {
		corrected.SauByYear[k] = v
	}
	corrected.SauByYear["2024"] = 380000

	assert.NotEqual(t, svc.key(domain.LevelDepartments, finistere), svc.key(domain.LevelDepartments, corrected))
	assert.Equal(t, svc.key(domain.LevelDepartments, finistere), svc.key(domain.LevelDepartments, finistere))

	data, err := svc.Chart(ctx, domain.LevelDepartments, corrected)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
	assert.Len(t, mc.data, 2)
}
