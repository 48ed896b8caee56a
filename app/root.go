package app

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/manifold-dev/manifold/dataapp"
	"github.com/manifold-dev/manifold/plugin/exportcsv"
	"github.com/manifold-dev/manifold/router"
)

// RootParams defines the dependencies of the root dispatcher.
type RootParams struct {
	fx.In

	Data *dataapp.App
	Log  *zap.Logger
}

// NewRoot assembles the router tree: the data app answers first, the
// CSV export plugin after it. The plugin dispatches its own data
// queries against the root, so it sees everything the tree serves.
func NewRoot(params RootParams) router.Dispatcher {
	root := router.New().WithLogger(params.Log.Named("router"))

	root.Append(params.Data)
	root.Append(exportcsv.New(exportcsv.Params{
		App: root,
		Log: params.Log,
	}))

	return root
}
