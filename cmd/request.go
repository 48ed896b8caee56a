package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/manifold-dev/manifold/router"
	"github.com/urfave/cli/v2"
)

var (
	requestCmdDescription = `The request command assembles the app's routing tree, then
dispatches a single request against it and prints the
response to stdout. No http server is started; this is
useful for scripting and for inspecting rule matching.

The method defaults to GET, or to POST when a body is given
with --data.`
	requestCmd = &cli.Command{
		Name:        "request",
		Usage:       "Dispatch a single request against the app.",
		Description: requestCmdDescription,
		ArgsUsage:   "url",
		Action:      requestAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "method",
				Aliases: []string{"X"},
				Usage:   "The request method to use.",
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "The request body to send.",
			},
		},
	}
)

func requestAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("expected exactly one url argument")
	}

	root, closeFn, err := buildRoot(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	var body []byte
	if data := ctx.String("data"); data != "" {
		body = []byte(data)
	}

	method := ctx.String("method")
	if method == "" {
		method = http.MethodGet
		if body != nil {
			method = http.MethodPost
		}
	}

	req, err := router.ParseRequest(method, ctx.Args().First(), body)
	if err != nil {
		return err
	}

	res := root.Dispatch(ctx.Context, req)

	payload, err := res.Body()
	if err != nil {
		return err
	}

	fmt.Printf("%d %s\n", res.Status(), http.StatusText(res.Status()))

	if ct := res.ContentType(); ct != "" && res.Header.Get("Content-Type") == "" {
		fmt.Printf("Content-Type: %s\n", ct)
	}
	for key, values := range res.Header {
		for _, value := range values {
			fmt.Printf("%s: %s\n", key, value)
		}
	}

	fmt.Println()

	if len(payload) > 0 {
		os.Stdout.Write(payload)
		fmt.Println()
	}

	return nil
}

func init() {
	rootApp.Commands = append(rootApp.Commands, requestCmd)
}
