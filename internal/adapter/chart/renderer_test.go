package chart

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthsim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func points(start int, values ...int64) []domain.YearProjection {
	out := make([]domain.YearProjection, len(values))
	for i, v := range values {
		out[i] = domain.YearProjection{Year: start + i, TotalValue: decimal.NewFromInt(v)}
	}
	return out
}

func TestRenderer_Projection(t *testing.T) {
	r := NewRenderer(time.Minute)

	img, err := r.Projection("sim-a", "Baseline", points(2025, 16800, 23940, 31500))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))
}

func TestRenderer_Projection_Empty(t *testing.T) {
	r := NewRenderer(time.Minute)

	_, err := r.Projection("sim-a", "Baseline", nil)
	assert.ErrorIs(t, err, ErrEmptySeries)
}

func TestRenderer_Projection_Cached(t *testing.T) {
	r := NewRenderer(time.Minute)

	first, err := r.Projection("sim-a", "Baseline", points(2025, 100, 200))
	require.NoError(t, err)

	// Same key returns the cached image even if the points differ
	second, err := r.Projection("sim-a", "Baseline", points(2025, 900, 1000, 1100))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderer_Comparison(t *testing.T) {
	r := NewRenderer(0)

	img, err := r.Comparison("a,b", []Series{
		{Name: "Baseline", Projection: points(2025, 100, 200, 300)},
		{Name: "Late", Projection: points(2026, 150, 250)},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))
}

func TestRenderer_Comparison_NoOverlap(t *testing.T) {
	r := NewRenderer(0)

	_, err := r.Comparison("a,b", []Series{
		{Name: "Early", Projection: points(2025, 100)},
		{Name: "Late", Projection: points(2030, 100)},
	})
	assert.ErrorIs(t, err, ErrEmptySeries)

	_, err = r.Comparison("none", nil)
	assert.ErrorIs(t, err, ErrEmptySeries)
}

func TestCommonYears(t *testing.T) {
	first, last, ok := commonYears([]Series{
		{Projection: points(2025, 1, 2, 3, 4)},
		{Projection: points(2027, 1, 2, 3)},
	})
	assert.True(t, ok)
	assert.Equal(t, 2027, first)
	assert.Equal(t, 2028, last)
}

func TestBounds(t *testing.T) {
	mn, mx := bounds([]float64{100, 200})
	assert.InDelta(t, 95, mn, 0.001)
	assert.InDelta(t, 205, mx, 0.001)

	mn, mx = bounds([]float64{0, 0})
	assert.Equal(t, 0.0, mn)
	assert.Equal(t, 1.0, mx)
}

func TestCache_Expires(t *testing.T) {
	c := newCache(time.Minute)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.set("k", []byte("img"))
	got, ok := c.get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("img"), got)

	now = now.Add(2 * time.Minute)
	_, ok = c.get("k")
	assert.False(t, ok)
}

func TestCache_Disabled(t *testing.T) {
	c := newCache(0)
	c.set("k", []byte("img"))
	_, ok := c.get("k")
	assert.False(t, ok)
}

func TestCache_SweepsExpiredOnSet(t *testing.T) {
	c := newCache(time.Minute)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.set("a", []byte("1"))
	c.set("b", []byte("2"))

	now = now.Add(2 * time.Minute)
	c.set("c", []byte("3"))

	assert.Len(t, c.entries, 1)
	assert.Contains(t, c.entries, "c")
}

func TestCache_EvictsOldestWhenFull(t *testing.T) {
	c := newCache(time.Hour)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	for i := 0; i < maxCacheEntries; i++ {
		c.set(fmt.Sprintf("k%d", i), []byte("img"))
		now = now.Add(time.Second)
	}
	require.Len(t, c.entries, maxCacheEntries)

	c.set("overflow", []byte("img"))
	assert.Len(t, c.entries, maxCacheEntries)
	assert.NotContains(t, c.entries, "k0")
	assert.Contains(t, c.entries, "overflow")

	// Replacing an existing key does not evict anything
	c.set("k1", []byte("new"))
	assert.Len(t, c.entries, maxCacheEntries)
	assert.Contains(t, c.entries, "k2")
}
