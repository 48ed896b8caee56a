package datasource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeriesSchema(t *testing.T) {
	schema := NewSeriesSchema()

	require.NotNil(t, schema)
}

func TestSchema_Validate(t *testing.T) {
	schema := NewSeriesSchema()

	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{name: "empty series", doc: `{"t":[],"x":[]}`},
		{name: "null samples", doc: `{"start":1000,"t":[0,1],"x":[3.5,null]}`},
		{name: "not json", doc: `{`, wantErr: true},
		{name: "missing values", doc: `{"t":[0]}`, wantErr: true},
		{name: "string sample", doc: `{"t":[0],"x":["high"]}`, wantErr: true},
		{name: "string time", doc: `{"t":["0"],"x":[1]}`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := schema.Validate([]byte(tc.doc))

			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSeries)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
