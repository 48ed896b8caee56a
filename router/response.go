package router

import (
	"encoding/json"
	"net/http"
)

// Response is the accumulated result of a dispatch. Partial responses
// from every matching handler are merged into one aggregate.
type Response struct {
	// StatusCode is the response status. Zero means the status was
	// never touched and renders as 200.
	StatusCode int

	// Header holds the response headers.
	Header http.Header

	// Content is the accumulated payload: nil, []any, map[string]any,
	// string, []byte, or whatever a handler returned.
	Content any
}

// Merge folds a partial response into r. Content accumulates by
// shape, headers are unioned with later values winning per key, and
// the status is overridden unless the partial carries the untouched
// default.
func (r *Response) Merge(partial *Response) *Response {
	if partial == nil {
		return r
	}

	if partial.StatusCode != 0 && partial.StatusCode != http.StatusOK {
		r.StatusCode = partial.StatusCode
	}

	if len(partial.Header) > 0 {
		if r.Header == nil {
			r.Header = make(http.Header, len(partial.Header))
		}
		for key, vals := range partial.Header {
			r.Header[key] = append([]string(nil), vals...)
		}
	}

	r.Content = mergeContent(r.Content, partial.Content)

	return r
}

// mergeContent combines two payloads: lists append, maps overlay,
// strings and bytes concatenate. On a shape mismatch the later
// payload replaces the earlier one.
func mergeContent(content, partial any) any {
	if partial == nil {
		return content
	}
	if content == nil {
		return partial
	}

	switch existing := content.(type) {
	case []any:
		if incoming, ok := partial.([]any); ok {
			return append(existing, incoming...)
		}
	case map[string]any:
		if incoming, ok := partial.(map[string]any); ok {
			for key, value := range incoming {
				existing[key] = value
			}
			return existing
		}
	case string:
		if incoming, ok := partial.(string); ok {
			return existing + incoming
		}
	case []byte:
		if incoming, ok := partial.([]byte); ok {
			return append(existing, incoming...)
		}
	}

	return partial
}

// Status returns the effective status code, normalizing the untouched
// default to 200.
func (r *Response) Status() int {
	if r.StatusCode == 0 {
		return http.StatusOK
	}

	return r.StatusCode
}

// ContentType returns the effective content type: an explicit
// Content-Type header wins, otherwise the type is derived from the
// payload shape.
func (r *Response) ContentType() string {
	if explicit := r.Header.Get("Content-Type"); explicit != "" {
		return explicit
	}

	switch r.Content.(type) {
	case nil:
		return ""
	case string:
		return "text/plain; charset=utf-8"
	case []byte:
		return "application/octet-stream"
	default:
		return "application/json"
	}
}

// Body renders the payload into bytes: strings and bytes pass
// through, everything else is JSON-encoded.
func (r *Response) Body() ([]byte, error) {
	switch content := r.Content.(type) {
	case nil:
		return nil, nil
	case []byte:
		return content, nil
	case string:
		return []byte(content), nil
	default:
		return json.Marshal(content)
	}
}

// wrap turns a handler's return value into a partial response
// carrying the rule's default status code.
func wrap(out any, status int) *Response {
	partial := &Response{StatusCode: status}

	switch value := out.(type) {
	case nil:
	case *Response:
		partial.Merge(value)
	default:
		partial.Content = value
	}

	return partial
}
