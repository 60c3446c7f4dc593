package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"sort"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/ougirez/agreste/internal/domain"
	"github.com/ougirez/agreste/internal/pkg/constants"
	"github.com/ougirez/agreste/internal/pkg/format"
)

const dpi = 96

var (
	lineColor  = color.RGBA{R: 74, G: 140, B: 39, A: 255}
	titleColor = color.RGBA{R: 51, G: 77, B: 51, A: 255}
)

type Point struct {
	Year domain.Year
	Sau  float64
}

// Points returns the series sorted by year. Keys that are not years are ignored.
func Points(series domain.SeriesArea) []Point {
	res := make([]Point, 0, len(series.SauByYear))
	for key, sau := range series.SauByYear {
		year, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		res = append(res, Point{Year: year, Sau: sau})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Year < res[j].Year })
	return res
}

// YDomain pads [min, max] by 10% of the spread, or by 5% of max when the series is flat.
func YDomain(points []Point) (float64, float64) {
	if len(points) == 0 {
		return 0, 1
	}

	lo, hi := points[0].Sau, points[0].Sau
	for _, p := range points[1:] {
		lo = min(lo, p.Sau)
		hi = max(hi, p.Sau)
	}

	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = hi * 0.05
	}
	if pad == 0 {
		return lo, lo + 1
	}
	return lo - pad, hi + pad
}

func Title(series domain.SeriesArea) string {
	return fmt.Sprintf("SAU - %s (%d-%d)", series.Name, domain.FirstYear, domain.LastYear)
}

type Renderer struct {
	Width  vg.Length
	Height vg.Length
}

// NewRenderer sizes the chart in pixels.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		Width:  vg.Length(width) * vg.Inch / dpi,
		Height: vg.Length(height) * vg.Inch / dpi,
	}
}

// Render draws the SAU series of one area as a PNG line chart.
func (r *Renderer) Render(series domain.SeriesArea) ([]byte, error) {
	points := Points(series)
	if len(points) == 0 {
		return nil, fmt.Errorf("series %s has no data: %w", series.Code, constants.ErrNotFound)
	}

	p := plot.New()
	p.Title.Text = Title(series)
	p.Title.TextStyle.Font.Size = vg.Points(15)
	p.Title.TextStyle.Color = titleColor
	p.X.Tick.Marker = yearTicks{}
	p.Y.Tick.Marker = hectareTicks{}

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = float64(pt.Year)
		xys[i].Y = pt.Sau
	}

	line, scatter, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, fmt.Errorf("plotter.NewLinePoints: %w", err)
	}
	line.Color = lineColor
	line.Width = vg.Points(2.5)
	scatter.Shape = draw.CircleGlyph{}
	scatter.Color = lineColor
	scatter.Radius = vg.Points(4)

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Color = color.RGBA{R: 229, G: 231, B: 235, A: 255}
	grid.Horizontal.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}

	p.Add(grid, line, scatter)

	p.Y.Min, p.Y.Max = YDomain(points)
	if p.X.Min == p.X.Max {
		p.X.Min, p.X.Max = p.X.Min-1, p.X.Max+1
	}

	canvas := vgimg.NewWith(vgimg.UseWH(r.Width, r.Height), vgimg.UseDPI(dpi))
	p.Draw(draw.New(canvas))

	var buf bytes.Buffer
	png := vgimg.PngCanvas{Canvas: canvas}
	if _, err = png.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("png.WriteTo: %w", err)
	}

	return buf.Bytes(), nil
}

type yearTicks struct{}

func (yearTicks) Ticks(lo, hi float64) []plot.Tick {
	var ticks []plot.Tick
	for y := int(lo); float64(y) <= hi; y++ {
		if float64(y) < lo {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: float64(y), Label: strconv.Itoa(y)})
	}
	return ticks
}

type hectareTicks struct{}

func (hectareTicks) Ticks(lo, hi float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(lo, hi)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = format.Hectares(ticks[i].Value)
		}
	}
	return ticks
}
