package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/manifold-dev/manifold/app"
	"github.com/manifold-dev/manifold/config"
	"github.com/manifold-dev/manifold/dataapp"
	"github.com/manifold-dev/manifold/datasource"
	"github.com/manifold-dev/manifold/router"
	"github.com/manifold-dev/manifold/util/conf"
	"github.com/manifold-dev/manifold/util/logging"
	"github.com/urfave/cli/v2"
)

var (
	routesCmdDescription = `The routes command assembles the app's routing tree the same
way the serve command does, and prints every registered rule
in dispatch order. Nested apps are indented below the router
they are mounted on.`
	routesCmd = &cli.Command{
		Name:        "routes",
		Usage:       "Print the assembled routing tree.",
		Description: routesCmdDescription,
		Action:      routesAction,
	}
)

func routesAction(ctx *cli.Context) error {
	root, closeFn, err := buildRoot(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	printRules(w, root, "")

	return w.Flush()
}

// printRules walks the routing tree depth-first, in the order the
// dispatcher visits it.
func printRules(w io.Writer, d router.Dispatcher, indent string) {
	node, ok := d.(interface {
		Rules() []*router.Rule
		Children() []router.Dispatcher
	})
	if !ok {
		fmt.Fprintf(w, "%s<opaque dispatcher>\n", indent)
		return
	}

	for _, rule := range node.Rules() {
		fmt.Fprintf(w, "%s%s\t%s\t%d\n", indent, rule.Method(), rule.Pattern(), rule.Status())
	}

	for _, child := range node.Children() {
		printRules(w, child, indent+"  ")
	}
}

// buildRoot constructs the routing tree without the fx app, for
// one-shot commands.
func buildRoot(ctx *cli.Context) (router.Dispatcher, func(), error) {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := conf.GetConfigFromContext[config.Config](ctx.Context)
	if err != nil {
		return nil, nil, err
	}

	store, err := datasource.NewFileStore(datasource.FileStoreParams{
		Config: cfg.Datasource,
		Log:    log,
	})
	if err != nil {
		return nil, nil, err
	}

	data := dataapp.New(dataapp.AppParams{
		Source: store,
		Log:    log,
	})

	root := app.NewRoot(app.RootParams{
		Data: data,
		Log:  log,
	})

	return root, store.Close, nil
}

func init() {
	rootApp.Commands = append(rootApp.Commands, routesCmd)
}
