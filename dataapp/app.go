package dataapp

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/manifold-dev/manifold/datasource"
	"github.com/manifold-dev/manifold/router"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// AppParams defines the dependencies for the data app.
type AppParams struct {
	fx.In

	// Source serves channel listings and timeseries data.
	Source datasource.Source

	// Log is the logger to use for the app.
	Log *zap.Logger
}

// App exposes a datasource over three endpoints: channel listing,
// windowed timeseries queries and control writes.
type App struct {
	*router.Router

	source datasource.Source
	log    *zap.Logger
}

// New creates a data app and registers its rules.
func New(params AppParams) *App {
	log := params.Log.Named("dataapp")

	app := &App{
		Router: router.New().WithLogger(log),
		source: params.Source,
		log:    log,
	}

	app.Handle(
		router.Get("/channels").
			To(app.channels),
		router.Get("/data/{channels}").
			String("channels").
			Float("length", 3600).
			Float("to", 0).
			Float("resample", -1).
			String("reducer", "last").
			To(app.data),
		router.Post("/control/{channel}").
			String("channel").
			Document().
			To(app.control),
	)

	return app
}

// channels lists every channel of the source. The list shape merges
// with channel listings contributed by sibling apps.
func (a *App) channels(ctx context.Context, args router.Args) any {
	channels, err := a.source.Channels(ctx)
	if err != nil {
		a.log.Warn("failed to list channels", zap.Error(err))
		return &router.Response{StatusCode: http.StatusInternalServerError}
	}

	out := make([]any, 0, len(channels))
	for _, channel := range channels {
		out = append(out, map[string]any{
			"name": channel.Name,
			"type": channel.Type,
		})
	}

	return out
}

// data queries a comma-separated list of channels over one window.
// The map shape merges with series contributed by sibling apps.
func (a *App) data(ctx context.Context, args router.Args) any {
	channels := strings.Split(args.String("channels"), ",")

	series, err := a.source.Timeseries(ctx, channels, datasource.QueryOpts{
		Length:   args.Float("length"),
		To:       args.Float("to"),
		Resample: args.Float("resample"),
		Reducer:  args.String("reducer"),
	})
	if err != nil {
		a.log.Warn("timeseries query failed", zap.Error(err))
		return &router.Response{StatusCode: http.StatusInternalServerError}
	}

	out := make(map[string]any, len(series))
	for name, s := range series {
		out[name] = s
	}

	return out
}

// control records one sample from a {"value": number|null} payload,
// stamped with the current time.
func (a *App) control(ctx context.Context, args router.Args) any {
	fields := args.Document().Map()
	if fields == nil {
		return &router.Response{StatusCode: http.StatusBadRequest}
	}

	raw, ok := fields["value"]
	if !ok {
		return &router.Response{StatusCode: http.StatusBadRequest}
	}

	var value *float64
	switch v := raw.(type) {
	case nil:
	case float64:
		value = &v
	default:
		return &router.Response{StatusCode: http.StatusBadRequest}
	}

	channel := args.String("channel")
	now := float64(time.Now().UnixMilli()) / 1000

	if err := a.source.Append(ctx, channel, now, value); err != nil {
		a.log.Warn("failed to append sample",
			zap.String("channel", channel),
			zap.Error(err),
		)
		return &router.Response{StatusCode: http.StatusInternalServerError}
	}

	return nil
}
