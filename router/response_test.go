package router_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manifold-dev/manifold/router"
)

func TestMerge_Status(t *testing.T) {
	tests := []struct {
		name     string
		running  int
		incoming int
		want     int
	}{
		{"default over default", 0, 0, 200},
		{"explicit 404 over default", 0, 404, 404},
		{"untouched 200 preserves running", 404, 200, 404},
		{"explicit 201 over default", 0, 201, 201},
		{"later explicit wins", 404, 500, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := &router.Response{StatusCode: tt.running}
			res.Merge(&router.Response{StatusCode: tt.incoming})

			assert.Equal(t, tt.want, res.Status())
		})
	}
}

func TestMerge_Content(t *testing.T) {
	tests := []struct {
		name     string
		running  any
		incoming any
		want     any
	}{
		{"nil takes incoming", nil, []any{"a"}, []any{"a"}},
		{"incoming nil keeps running", "keep", nil, "keep"},
		{"lists append", []any{"a"}, []any{"b"}, []any{"a", "b"}},
		{"maps overlay", map[string]any{"a": 1, "b": 1}, map[string]any{"b": 2}, map[string]any{"a": 1, "b": 2}},
		{"strings concatenate", "foo", "bar", "foobar"},
		{"bytes concatenate", []byte("a,"), []byte("b"), []byte("a,b")},
		{"mismatch replaces", []any{"a"}, "text", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := &router.Response{Content: tt.running}
			res.Merge(&router.Response{Content: tt.incoming})

			assert.Equal(t, tt.want, res.Content)
		})
	}
}

func TestMerge_Headers_LaterWins(t *testing.T) {
	res := &router.Response{Header: http.Header{
		"Content-Type": []string{"text/plain"},
		"X-Source":     []string{"first"},
	}}

	res.Merge(&router.Response{Header: http.Header{
		"X-Source": []string{"second"},
	}})

	assert.Equal(t, "text/plain", res.Header.Get("Content-Type"))
	assert.Equal(t, "second", res.Header.Get("X-Source"))
}

func TestMerge_Nil_NoOp(t *testing.T) {
	res := &router.Response{StatusCode: 404, Content: "keep"}

	res.Merge(nil)

	assert.Equal(t, 404, res.StatusCode)
	assert.Equal(t, "keep", res.Content)
}

func TestResponse_Body(t *testing.T) {
	tests := []struct {
		name    string
		content any
		want    string
	}{
		{"nil", nil, ""},
		{"string", "hello", "hello"},
		{"bytes", []byte("raw"), "raw"},
		{"map", map[string]any{"id": "42"}, `{"id":"42"}`},
		{"list", []any{"a", "b"}, `["a","b"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := &router.Response{Content: tt.content}

			body, err := res.Body()

			assert.NoError(t, err)
			assert.Equal(t, tt.want, string(body))
		})
	}
}

func TestResponse_ContentType(t *testing.T) {
	tests := []struct {
		name    string
		content any
		header  http.Header
		want    string
	}{
		{"nil", nil, nil, ""},
		{"string", "hello", nil, "text/plain; charset=utf-8"},
		{"bytes", []byte("raw"), nil, "application/octet-stream"},
		{"map", map[string]any{}, nil, "application/json"},
		{"list", []any{}, nil, "application/json"},
		{"explicit header wins", []any{}, http.Header{"Content-Type": []string{"text/csv"}}, "text/csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := &router.Response{Content: tt.content, Header: tt.header}

			assert.Equal(t, tt.want, res.ContentType())
		})
	}
}

func TestResponse_Status_DefaultsTo200(t *testing.T) {
	assert.Equal(t, 200, (&router.Response{}).Status())
	assert.Equal(t, 507, (&router.Response{StatusCode: 507}).Status())
}
