package lambda

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/manifold-dev/manifold/internal/server"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type LambdaHandlerParams struct {
	fx.In

	Config Config

	// Handlers is the route group the standalone server would mount;
	// in lambda mode the same routes back the event proxy.
	Handlers []*server.HttpHandler `group:"handlers"`

	Context context.Context
	Logger  *zap.Logger
}

// LambdaHandler adapts the app's HTTP routes to AWS Lambda proxy
// events.
type LambdaHandler struct {
	config Config
	ctx    context.Context
	cancel context.CancelFunc
	mux    *http.ServeMux
	log    *zap.Logger
}

func NewLambdaHandler(params LambdaHandlerParams) *LambdaHandler {
	ctx, cancel := context.WithCancel(params.Context)

	mux := http.NewServeMux()

	for _, handler := range params.Handlers {
		// routes may opt out of being mounted
		if handler == nil {
			continue
		}
		mux.Handle(handler.Pattern, handler.Handler)
	}

	return &LambdaHandler{
		config: params.Config,
		ctx:    ctx,
		cancel: cancel,
		mux:    mux,
		log:    params.Logger,
	}
}

// NewLifecycleHandler binds the handler to the fx lifecycle: the
// lambda runtime loop starts on start and is cancelled on stop.
func NewLifecycleHandler(params LambdaHandlerParams, lc fx.Lifecycle) *LambdaHandler {
	handler := NewLambdaHandler(params)
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return handler.Start()
		},
		OnStop: func(context.Context) error {
			handler.Shutdown()
			return nil
		},
	})
	return handler
}

// Start begins polling the lambda runtime in a new goroutine. It
// fails if the configured proxy source is unknown.
func (s *LambdaHandler) Start() error {
	handler, err := s.getProxyFunction()
	if err != nil {
		return err
	}

	s.log.Debug("using lambda event proxy", zap.Stringer("proxy_source", s.config.ProxySource))

	go lambda.StartWithOptions(handler, lambda.WithContext(s.ctx))

	return nil
}

// Shutdown cancels the runtime loop.
func (s *LambdaHandler) Shutdown() {
	s.cancel()
}

// getProxyFunction picks the event adapter matching the service that
// fronts the function.
func (s *LambdaHandler) getProxyFunction() (any, error) {
	switch s.config.ProxySource {
	case ProxySourceApiGatewayV1:
		return httpadapter.New(s.mux).ProxyWithContext, nil
	case ProxySourceApiGatewayV2:
		return httpadapter.NewV2(s.mux).ProxyWithContext, nil
	case ProxySourceAlb:
		return httpadapter.NewALB(s.mux).ProxyWithContext, nil
	default:
		return nil, fmt.Errorf("invalid proxy source: %s", s.config.ProxySource)
	}
}
