package router

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// Dispatcher is the single capability routers compose over: anything
// that can turn one request into one response.
type Dispatcher interface {
	Dispatch(ctx context.Context, req *Request) *Response
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(ctx context.Context, req *Request) *Response

func (f DispatcherFunc) Dispatch(ctx context.Context, req *Request) *Response {
	return f(ctx, req)
}

// HandlerFunc is the handler invoked when a rule matches. Its return
// value is wrapped into a partial response carrying the rule's
// default status: nil, []any, map[string]any, string, []byte, or a
// *Response with explicit status and headers.
type HandlerFunc func(ctx context.Context, args Args) any

// Router owns an ordered set of rules and two ordered lists of child
// dispatchers. It dispatches a request by traversing prepended
// children, its own rules, and appended children, merging every
// partial response in traversal order.
//
// The zero value is ready to use. Routers are safe for concurrent
// dispatch once construction is done.
type Router struct {
	log       *zap.Logger
	rules     []*Rule
	prepended []Dispatcher
	appended  []Dispatcher
}

// New creates an empty router.
func New() *Router {
	return &Router{}
}

// WithLogger sets the logger used for match diagnostics and returns
// the router.
func (r *Router) WithLogger(log *zap.Logger) *Router {
	r.log = log
	return r
}

// Handle attaches rules to the router. Attaching the same rule twice
// is a silent no-op.
func (r *Router) Handle(rules ...*Rule) *Router {
attach:
	for _, rule := range rules {
		for _, existing := range r.rules {
			if existing == rule {
				continue attach
			}
		}
		r.rules = append(r.rules, rule)
	}

	return r
}

// Prepend inserts a child dispatcher in front of all currently
// prepended children, so the most recently prepended child runs
// first, before the router's own rules.
func (r *Router) Prepend(d Dispatcher) *Router {
	r.prepended = append([]Dispatcher{d}, r.prepended...)
	return r
}

// Append adds a child dispatcher after the router's own rules and
// after all previously appended children.
func (r *Router) Append(d Dispatcher) *Router {
	r.appended = append(r.appended, d)
	return r
}

// Rules returns the router's own rules in declaration order.
func (r *Router) Rules() []*Rule {
	return append([]*Rule(nil), r.rules...)
}

// Children returns the child dispatchers in traversal order,
// prepended first.
func (r *Router) Children() []Dispatcher {
	children := make([]Dispatcher, 0, len(r.prepended)+len(r.appended))
	children = append(children, r.prepended...)
	children = append(children, r.appended...)

	return children
}

// Dispatch evaluates the request against the router tree. Every rule
// is evaluated independently: all matching handlers fire and their
// outputs accumulate into one response. A handler aborting the
// request suppresses every later match attempt in the same traversal
// while keeping what was merged before.
func (r *Router) Dispatch(ctx context.Context, req *Request) *Response {
	res := &Response{}

	for _, child := range r.prepended {
		res.Merge(child.Dispatch(ctx, req))
	}

	for _, rule := range r.rules {
		args, ok := rule.match(req, r.logger())
		if !ok {
			continue
		}
		res.Merge(wrap(rule.handler(ctx, args), rule.status))
	}

	for _, child := range r.appended {
		res.Merge(child.Dispatch(ctx, req))
	}

	return res
}

// DispatchURL parses a raw URL and dispatches it, for programmatic
// invocation without a host server. The method is GET, or POST when a
// body is given.
func (r *Router) DispatchURL(ctx context.Context, rawurl string, body []byte) (*Response, error) {
	method := http.MethodGet
	if body != nil {
		method = http.MethodPost
	}

	req, err := ParseRequest(method, rawurl, body)
	if err != nil {
		return nil, err
	}

	return r.Dispatch(ctx, req), nil
}

func (r *Router) logger() *zap.Logger {
	if r.log != nil {
		return r.log
	}

	return zap.NewNop()
}
