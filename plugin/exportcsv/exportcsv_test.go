package exportcsv_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/manifold-dev/manifold/datasource"
	"github.com/manifold-dev/manifold/plugin/exportcsv"
	"github.com/manifold-dev/manifold/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func ptr(v float64) *float64 {
	return &v
}

// newTree builds a root router answering data queries with the given
// payload, with the CSV plugin appended. The returned map pointer
// captures the query the plugin forwarded.
func newTree(t *testing.T, data map[string]any) (*router.Router, *map[string]string) {
	t.Helper()

	var query map[string]string

	root := router.New()
	root.Handle(router.Get("/data/{channels}").
		String("channels").
		QueryMap().
		To(func(ctx context.Context, args router.Args) any {
			query = args.QueryMap()
			return data
		}))

	root.Append(exportcsv.New(exportcsv.Params{
		App: root,
		Log: zaptest.NewLogger(t),
	}))

	return root, &query
}

func TestExportCSV(t *testing.T) {
	root, _ := newTree(t, map[string]any{
		"a": datasource.Series{Start: 1000000000, T: []float64{0, 10}, X: []*float64{ptr(1.5), nil}},
		"b": datasource.Series{Start: 1000000000, T: []float64{0}, X: []*float64{ptr(2)}},
	})

	res, err := root.DispatchURL(context.Background(), "/export/csv/a,b?timezone=utc", nil)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.Status())
	assert.Equal(t, "text/csv", res.ContentType())

	want := strings.Join([]string{
		"DateTime,TimeStamp,a,b",
		"2001-09-09T01:46:40+00:00,1000000000,1.5,2",
		"2001-09-09T01:46:50+00:00,1000000010,null,NaN",
	}, "\n")

	body, ok := res.Content.([]byte)
	require.True(t, ok)
	assert.Equal(t, want, string(body))
}

func TestExportCSV_LocalTimezone(t *testing.T) {
	root, query := newTree(t, map[string]any{
		"a": datasource.Series{Start: 1700000000, T: []float64{0}, X: []*float64{ptr(1)}},
	})

	res, err := root.DispatchURL(context.Background(), "/export/csv/a", nil)
	require.NoError(t, err)

	wantDate := time.Unix(1700000000, 0).Format("2006-01-02T15:04:05-07:00")
	want := strings.Join([]string{
		"DateTime,TimeStamp,a",
		wantDate + ",1700000000,1",
	}, "\n")

	body, ok := res.Content.([]byte)
	require.True(t, ok)
	assert.Equal(t, want, string(body))

	assert.Equal(t, "local", (*query)["timezone"])
	assert.Equal(t, "0", (*query)["resample"])
}

func TestExportCSV_ForwardsQueryOpts(t *testing.T) {
	root, query := newTree(t, map[string]any{
		"a": datasource.Series{Start: 0, T: []float64{1}, X: []*float64{ptr(1)}},
	})

	_, err := root.DispatchURL(context.Background(), "/export/csv/a?resample=-5&length=60&timezone=UTC", nil)
	require.NoError(t, err)

	// negative resample would break row alignment and is coerced to auto
	assert.Equal(t, "0", (*query)["resample"])
	assert.Equal(t, "60", (*query)["length"])
	assert.Equal(t, "UTC", (*query)["timezone"])
}

func TestExportCSV_SkipsUnknownAndDuplicateChannels(t *testing.T) {
	root, _ := newTree(t, map[string]any{
		"a": datasource.Series{Start: 0, T: []float64{}, X: []*float64{}},
	})

	res, err := root.DispatchURL(context.Background(), "/export/csv/a,ghost,a?timezone=utc", nil)
	require.NoError(t, err)

	body, ok := res.Content.([]byte)
	require.True(t, ok)
	assert.Equal(t, "DateTime,TimeStamp,a", string(body))
}

func TestExportCSV_NoData(t *testing.T) {
	root := router.New()
	root.Append(exportcsv.New(exportcsv.Params{
		App: root,
		Log: zaptest.NewLogger(t),
	}))

	res, err := root.DispatchURL(context.Background(), "/export/csv/a", nil)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.Status())
	assert.Nil(t, res.Content)
}
