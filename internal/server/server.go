package server

import (
	"context"
	"net"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

type HttpServerParams struct {
	fx.In

	Context context.Context

	Config HttpConfig

	Handlers []*HttpHandler `group:"handlers"`
	Logger   *zap.Logger
}

// HttpServer serves the collected route group over plain HTTP, or h2c
// when configured.
type HttpServer struct {
	ctx    context.Context
	addr   string
	server *http.Server
	log    *zap.Logger
}

func NewHttpServer(params HttpServerParams) *HttpServer {
	mux := http.NewServeMux()

	for _, handler := range params.Handlers {
		// routes may opt out of being mounted
		if handler == nil {
			continue
		}
		mux.Handle(handler.Pattern, handler.Handler)
	}

	var handler http.Handler = mux
	if params.Config.H2c {
		handler = h2c.NewHandler(mux, &http2.Server{})
	}

	addr := params.Config.Addr()

	return &HttpServer{
		ctx:  params.Context,
		addr: addr,
		server: &http.Server{
			Addr:    addr,
			Handler: handler,
		},
		log: params.Logger,
	}
}

// NewLifecycleServer binds the server to the fx lifecycle: serve on
// start, drain on stop.
func NewLifecycleServer(params HttpServerParams, lc fx.Lifecycle) *HttpServer {
	server := NewHttpServer(params)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go server.Serve(ctx)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
	return server
}

func (s *HttpServer) Serve(context.Context) error {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	cfg := net.ListenConfig{}

	listener, err := cfg.Listen(ctx, "tcp", s.addr)

	if err != nil {
		s.log.With(zap.Error(err)).Fatal("failed to listen")
		return err
	}

	s.log.With(zap.String("address", listener.Addr().String())).Info("listening")

	if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
		s.log.With(zap.Error(err)).Error("failed to serve")
		return err
	}

	return nil
}

func (s *HttpServer) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		s.log.With(zap.Error(err)).Error("failed to shutdown")
		return err
	}

	return nil
}
