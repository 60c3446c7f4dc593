package chart

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/ougirez/agreste/internal/domain"
	"github.com/ougirez/agreste/internal/pkg/cache"
	"github.com/ougirez/agreste/internal/pkg/logger"
	"github.com/ougirez/agreste/internal/pkg/metrics"
)

// Service serves rendered charts through a cache. Cache failures only cost a render.
type Service struct {
	renderer *Renderer
	cache    cache.Cache
	ttl      time.Duration
}

func NewService(renderer *Renderer, c cache.Cache, ttl time.Duration) *Service {
	if c == nil {
		c = cache.Nop()
	}
	return &Service{renderer: renderer, cache: c, ttl: ttl}
}

// key includes a digest of the series, so a re-imported series never hits a stale chart.
func (s *Service) key(level domain.Level, series domain.SeriesArea) string {
	return fmt.Sprintf("chart:%s:%s:%.0fx%.0f:%016x", level, series.Code,
		s.renderer.Width.Points(), s.renderer.Height.Points(), fingerprint(series))
}

func fingerprint(series domain.SeriesArea) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(series.Name)

	var buf [16]byte
	for _, p := range Points(series) {
		binary.LittleEndian.PutUint64(buf[:8], uint64(p.Year))
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(p.Sau))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

func (s *Service) Chart(ctx context.Context, level domain.Level, series domain.SeriesArea) ([]byte, error) {
	key := s.key(level, series)

	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.Warnf(ctx, "chart cache get %s: %s", key, err.Error())
	}
	if ok {
		metrics.ChartCacheHitsTotal.Inc()
		return data, nil
	}
	metrics.ChartCacheMissesTotal.Inc()

	start := time.Now()
	data, err = s.renderer.Render(series)
	if err != nil {
		return nil, fmt.Errorf("renderer.Render: %w", err)
	}
	metrics.ChartRenderDurationMs.Observe(float64(time.Since(start).Milliseconds()))

	if err = s.cache.Set(ctx, key, data, s.ttl); err != nil {
		logger.Warnf(ctx, "chart cache set %s: %s", key, err.Error())
	}

	return data, nil
}
