package datasource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 {
	return &v
}

func TestAutoWidth(t *testing.T) {
	assert.Equal(t, 6.0, autoWidth(3600))
	assert.Equal(t, 0.1, autoWidth(60))
}

func TestResample_BucketsFromWindowEnd(t *testing.T) {
	series := Series{
		Start: 1000,
		T:     []float64{1, 2, 11},
		X:     []*float64{ptr(1), ptr(2), ptr(3)},
	}

	got := resample(series, 1020, 10, "last")

	// two buckets counted back from 1020, timestamped at their centers
	require.Equal(t, []float64{5, 15}, got.T)
	require.Equal(t, []*float64{ptr(2), ptr(3)}, got.X)
}

func TestResample_Reducers(t *testing.T) {
	series := Series{
		T: []float64{1, 2, 3},
		X: []*float64{ptr(4), nil, ptr(2)},
	}

	tests := []struct {
		reducer string
		want    *float64
	}{
		{reducer: "first", want: ptr(4)},
		{reducer: "last", want: ptr(2)},
		{reducer: "mean", want: ptr(3)},
		{reducer: "sum", want: ptr(6)},
		{reducer: "min", want: ptr(2)},
		{reducer: "max", want: ptr(4)},
	}

	for _, tc := range tests {
		t.Run(tc.reducer, func(t *testing.T) {
			got := resample(series, 10, 10, tc.reducer)

			require.Len(t, got.X, 1)
			assert.Equal(t, tc.want, got.X[0])
		})
	}
}

func TestResample_NullSamples(t *testing.T) {
	series := Series{
		T: []float64{1, 2},
		X: []*float64{nil, nil},
	}

	t.Run("last keeps null", func(t *testing.T) {
		got := resample(series, 10, 10, "last")
		require.Equal(t, []*float64{nil}, got.X)
	})

	t.Run("mean of nulls is null", func(t *testing.T) {
		got := resample(series, 10, 10, "mean")
		require.Equal(t, []*float64{nil}, got.X)
	})
}

func TestResample_UnknownReducerKeepsSeries(t *testing.T) {
	series := Series{
		Start: 100,
		T:     []float64{1, 2},
		X:     []*float64{ptr(1), ptr(2)},
	}

	got := resample(series, 200, 10, "median")

	assert.Equal(t, series, got)
}

func TestResample_EmptySeries(t *testing.T) {
	got := resample(Series{Start: 50}, 100, 10, "mean")

	assert.Empty(t, got.T)
	assert.Empty(t, got.X)
}

func TestWindow_HalfOpenInterval(t *testing.T) {
	series := Series{
		Start: 1000,
		T:     []float64{0, 10, 20, 30},
		X:     []*float64{ptr(1), ptr(2), ptr(3), ptr(4)},
	}

	got := window(series, 1010, 1030)

	assert.Equal(t, []float64{10, 20}, got.T)
	assert.Equal(t, []*float64{ptr(2), ptr(3)}, got.X)
}
