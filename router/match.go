package router

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/manifold-dev/manifold/document"
)

// match evaluates the rule against a request and returns the bound
// handler arguments. A false return means the rule contributes
// nothing to the response; it is never an error.
func (r *Rule) match(req *Request, log *zap.Logger) (Args, bool) {
	// do not process aborted requests
	if req.Aborted() {
		return Args{}, false
	}

	if req.Method != r.method {
		return Args{}, false
	}

	reqLen, patLen := len(req.Path), len(r.segments)
	if reqLen != patLen {
		if reqLen > patLen && !r.wildcard {
			return Args{}, false
		}
		// shorter path: the tail must be placeholders that can
		// resolve via default values
		for k := reqLen; k < patLen; k++ {
			if !r.segments[k].param {
				return Args{}, false
			}
		}
	}

	working := map[string]string{}
	for pos, value := range req.Path {
		if pos >= patLen {
			// absorbed by the wildcard tail
			continue
		}
		seg := r.segments[pos]
		if seg.param {
			working[seg.value] = value
		} else if seg.value != value {
			return Args{}, false
		}
	}

	// query values shadow same-named path captures
	for key, value := range req.Query {
		working[key] = value
	}

	values := make(map[string]any, len(r.params))
	for _, p := range r.params {
		raw, ok := working[p.name]
		if !ok {
			if p.def != nil {
				values[p.name] = p.def
			}
			continue
		}

		value, err := coerce(raw, p.kind)
		if err != nil {
			log.Warn("incompatible parameter type",
				zap.String("rule", r.String()),
				zap.String("param", p.name),
				zap.Error(err),
			)
			return Args{}, false
		}

		values[p.name] = value
	}

	args := Args{values: values}

	if r.roles.request {
		args.request = req
	}
	if r.roles.rawBody {
		args.body = req.Body
	}
	if r.roles.document {
		doc := document.Parse(req.Body)
		if doc.Value() == nil {
			return Args{}, false
		}
		args.document = doc
	}
	if r.roles.pathList {
		args.path = append([]string(nil), req.Path...)
	}
	if r.roles.queryMap {
		query := make(map[string]string, len(req.Query))
		for key, value := range req.Query {
			query[key] = value
		}
		args.query = query
	}

	return args, true
}

func coerce(raw string, kind paramKind) (any, error) {
	switch kind {
	case kindString:
		return raw, nil
	case kindInt:
		value, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		return value, nil
	case kindFloat:
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, err
		}
		return value, nil
	case kindBool:
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		return value, nil
	default:
		return nil, fmt.Errorf("unknown parameter kind %d", kind)
	}
}
