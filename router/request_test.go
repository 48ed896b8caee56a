package router_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manifold-dev/manifold/router"
)

func TestParseRequest(t *testing.T) {
	req, err := router.ParseRequest("get", "/api/items/42?mode=fast&mode=slow&q=a%20b", nil)

	assert.NoError(t, err)
	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, []string{"api", "items", "42"}, req.Path)
	assert.Equal(t, "slow", req.Query["mode"], "later duplicate keys overwrite earlier ones")
	assert.Equal(t, "a b", req.Query["q"])
	assert.Nil(t, req.Body)
	assert.False(t, req.Aborted())
}

func TestParseRequest_InvalidURL(t *testing.T) {
	_, err := router.ParseRequest("GET", "://missing-scheme", nil)

	assert.Error(t, err)
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		path     string
		segments []string
	}{
		{"/items/42", []string{"items", "42"}},
		{"items/42/", []string{"items", "42"}},
		{"//a///b", []string{"a", "b"}},
		{"/", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.segments, router.SplitPath(tt.path))
		})
	}
}

func TestAbort_OneWay(t *testing.T) {
	req := router.NewRequest("GET", []string{"hello"}, nil, nil)

	assert.False(t, req.Aborted())

	req.Abort()

	assert.True(t, req.Aborted())
}
