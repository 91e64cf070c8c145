// Package chart renders projections as PNG line charts.
package chart

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/simaogato/wealthsim/internal/domain"
	"github.com/vicanso/go-charts/v2"
)

// ErrEmptySeries is returned when there is nothing to plot
var ErrEmptySeries = errors.New("no projection points to plot")

// DefaultCacheTTL is how long a rendered chart is reused
const DefaultCacheTTL = 10 * time.Minute

// Series is one named projection in a comparison chart
type Series struct {
	Name       string
	Projection []domain.YearProjection
}

// Renderer draws projection charts and caches the results
type Renderer struct {
	cache *cache
}

// NewRenderer creates a Renderer; a non-positive ttl disables caching
func NewRenderer(ttl time.Duration) *Renderer {
	return &Renderer{cache: newCache(ttl)}
}

// Projection renders a single projection. key identifies the inputs for caching,
// callers pass something like "<simulationID>|<rate>|<startDate>".
func (r *Renderer) Projection(key, title string, projection []domain.YearProjection) ([]byte, error) {
	if len(projection) == 0 {
		return nil, ErrEmptySeries
	}
	cacheKey := "projection|" + key
	if img, ok := r.cache.get(cacheKey); ok {
		return img, nil
	}

	labels := make([]string, len(projection))
	values := make([]float64, len(projection))
	for i, p := range projection {
		labels[i] = strconv.Itoa(p.Year)
		values[i] = p.TotalValue.InexactFloat64()
	}
	yMin, yMax := bounds(values)

	painter, err := charts.LineRender([][]float64{values},
		charts.TitleTextOptionFunc(title),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, BoundaryGap: charts.FalseFlag(), SplitNumber: splitNumber(len(labels))}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render projection chart: %w", err)
	}
	img, err := painter.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to encode projection chart: %w", err)
	}

	r.cache.set(cacheKey, img)
	return img, nil
}

// Comparison renders several projections on one chart over the years they all cover
func (r *Renderer) Comparison(key string, series []Series) ([]byte, error) {
	first, last, ok := commonYears(series)
	if !ok {
		return nil, ErrEmptySeries
	}
	cacheKey := "comparison|" + key
	if img, ok := r.cache.get(cacheKey); ok {
		return img, nil
	}

	labels := make([]string, 0, last-first+1)
	for year := first; year <= last; year++ {
		labels = append(labels, strconv.Itoa(year))
	}

	values := make([][]float64, 0, len(series))
	names := make([]string, 0, len(series))
	var all []float64
	for _, s := range series {
		row := make([]float64, 0, len(labels))
		for _, p := range s.Projection {
			if p.Year < first || p.Year > last {
				continue
			}
			v := p.TotalValue.InexactFloat64()
			row = append(row, v)
			all = append(all, v)
		}
		values = append(values, row)
		names = append(names, s.Name)
	}
	yMin, yMax := bounds(all)

	seriesList := charts.NewSeriesListDataFromValues(values, charts.ChartTypeLine)
	for i := range seriesList {
		seriesList[i].Name = names[i]
	}

	painter, err := charts.Render(charts.ChartOption{SeriesList: seriesList},
		charts.TitleTextOptionFunc("Comparison", strings.Join(names, ", ")),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, BoundaryGap: charts.FalseFlag(), SplitNumber: splitNumber(len(labels))}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.LegendOptionFunc(charts.LegendOption{Data: names}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render comparison chart: %w", err)
	}
	img, err := painter.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to encode comparison chart: %w", err)
	}

	r.cache.set(cacheKey, img)
	return img, nil
}

// commonYears returns the year range every series covers
func commonYears(series []Series) (int, int, bool) {
	if len(series) == 0 {
		return 0, 0, false
	}
	first, last := 0, 0
	for i, s := range series {
		if len(s.Projection) == 0 {
			return 0, 0, false
		}
		start := s.Projection[0].Year
		end := s.Projection[len(s.Projection)-1].Year
		if i == 0 || start > first {
			first = start
		}
		if i == 0 || end < last {
			last = end
		}
	}
	return first, last, first <= last
}

// bounds pads the value range by 5% and never drops below zero
func bounds(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 1
	}
	mn, mx := values[0], values[0]
	for _, v := range values[1:] {
		if v < mn {
			mn = v
		}
		if v > mx {
			mx = v
		}
	}
	pad := (mx - mn) * 0.05
	if pad < mx*0.002 {
		pad = mx * 0.002
	}
	if pad == 0 {
		pad = 1
	}
	mn -= pad
	if mn < 0 {
		mn = 0
	}
	return mn, mx + pad
}

func splitNumber(points int) int {
	switch {
	case points <= 2:
		return 1
	case points < 12:
		return points - 1
	default:
		return 12
	}
}
