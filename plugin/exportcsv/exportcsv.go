// Package exportcsv renders timeseries queries as CSV tables. The
// plugin does not read any datasource itself: it dispatches a
// synthetic data query against its parent and formats whatever the
// tree answers, one column per requested channel.
package exportcsv

import (
	"context"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/manifold-dev/manifold/datasource"
	"github.com/manifold-dev/manifold/router"
	"go.uber.org/zap"
)

// Params defines the dependencies for the CSV export plugin.
type Params struct {
	// App is the dispatcher answering data queries, usually the root
	// of the tree the plugin is attached to.
	App router.Dispatcher

	// Log is the logger to use for the plugin.
	Log *zap.Logger
}

// App is the CSV export plugin.
type App struct {
	*router.Router

	parent router.Dispatcher
	log    *zap.Logger
}

// New creates a CSV export plugin dispatching data queries against
// the given parent.
func New(params Params) *App {
	log := params.Log.Named("exportcsv")

	app := &App{
		Router: router.New().WithLogger(log),
		parent: params.App,
		log:    log,
	}

	app.Handle(
		router.Get("/export/csv/{channels}").
			String("channels").
			String("timezone", "local").
			Float("resample", 0).
			QueryMap().
			To(app.exportCSV),
	)

	return app
}

func (a *App) exportCSV(ctx context.Context, args router.Args) any {
	channels := args.String("channels")

	timezone := args.String("timezone")
	if timezone == "" {
		timezone = "local"
	}
	utc := !strings.EqualFold(timezone, "local")

	// raw samples would not line up into rows, ask for auto resampling
	// instead
	resample := args.Float("resample")
	if resample < 0 {
		resample = 0
	}

	opts := url.Values{}
	for key, value := range args.QueryMap() {
		opts.Set(key, value)
	}
	opts.Set("timezone", timezone)
	opts.Set("resample", strconv.FormatFloat(resample, 'f', -1, 64))

	req, err := router.ParseRequest(http.MethodGet, "/data/"+channels+"?"+opts.Encode(), nil)
	if err != nil {
		a.log.Warn("failed to build data query", zap.Error(err))
		return nil
	}

	data, ok := a.parent.Dispatch(ctx, req).Content.(map[string]any)
	if !ok {
		return nil
	}

	names := make([]string, 0, len(data))
	columns := make([]datasource.Series, 0, len(data))
	seen := make(map[string]bool, len(data))
	for _, name := range strings.Split(channels, ",") {
		series, ok := data[name].(datasource.Series)
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
		columns = append(columns, series)
	}

	header := append([]string{"DateTime", "TimeStamp"}, names...)

	// rows are indexed by sample position; the channel that first
	// reaches an index stamps the row and later channels fill their
	// own column
	var rows [][]string
	for c, series := range columns {
		for k, dt := range series.T {
			if k >= len(series.X) {
				break
			}
			if len(rows) <= k {
				t := math.Trunc(10*(series.Start+dt)) / 10
				row := make([]string, len(header))
				row[0] = formatDateTime(t, utc)
				row[1] = strconv.FormatInt(int64(t), 10)
				for i := 2; i < len(row); i++ {
					row[i] = "NaN"
				}
				rows = append(rows, row)
			}
			rows[k][2+c] = cell(series.X[k])
		}
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(header, ","))
	for _, row := range rows {
		lines = append(lines, strings.Join(row, ","))
	}

	return &router.Response{
		Header:  http.Header{"Content-Type": []string{"text/csv"}},
		Content: []byte(strings.Join(lines, "\n")),
	}
}

// formatDateTime renders a unix timestamp as ISO-8601 with a numeric
// offset, in the local zone or UTC.
func formatDateTime(t float64, utc bool) string {
	ts := time.Unix(int64(t), 0)
	if utc {
		ts = ts.UTC()
	}

	return ts.Format("2006-01-02T15:04:05-07:00")
}

// cell renders one sample, "null" for null samples.
func cell(x *float64) string {
	if x == nil {
		return "null"
	}

	return strconv.FormatFloat(*x, 'f', -1, 64)
}
