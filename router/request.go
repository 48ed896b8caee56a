package router

import (
	"fmt"
	"net/url"
	"strings"
)

// Request represents one incoming request. It is created once per
// request, passed by reference through the whole router tree, and
// owned by that request's traversal.
type Request struct {
	// Method is the uppercased request method.
	Method string

	// Path holds the request path split on '/', empty segments dropped.
	Path []string

	// Query holds the decoded query parameters. Parameters are
	// single-valued: a later duplicate key overwrites an earlier one.
	Query map[string]string

	// Body is the raw request body, nil if absent.
	Body []byte

	aborted bool
}

// NewRequest creates a request from already-parsed parts.
func NewRequest(method string, path []string, query map[string]string, body []byte) *Request {
	if query == nil {
		query = map[string]string{}
	}

	return &Request{
		Method: strings.ToUpper(method),
		Path:   path,
		Query:  query,
		Body:   body,
	}
}

// ParseRequest creates a request from a raw URL, for programmatic
// dispatch without a host server.
func ParseRequest(method, rawurl string, body []byte) (*Request, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, fmt.Errorf("failed to parse url: %w", err)
	}

	return NewRequest(method, SplitPath(u.Path), QueryMap(u.Query()), body), nil
}

// Abort marks the request as aborted. The flag is monotonic: once
// set, it stays set for the lifetime of the request, and every later
// match attempt in the same traversal fails.
func (r *Request) Abort() {
	r.aborted = true
}

// Aborted reports whether the request has been aborted.
func (r *Request) Aborted() bool {
	return r.aborted
}

// SplitPath splits a URL path on '/' and drops empty segments.
func SplitPath(path string) []string {
	var segments []string
	for _, elem := range strings.Split(path, "/") {
		if elem != "" {
			segments = append(segments, elem)
		}
	}

	return segments
}

// QueryMap flattens parsed query values into the single-valued form
// used by requests, keeping the last value of each key.
func QueryMap(values url.Values) map[string]string {
	query := make(map[string]string, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			query[key] = vals[len(vals)-1]
		}
	}

	return query
}
