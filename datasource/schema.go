package datasource

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/manifold-dev/manifold/util"
)

//go:embed series.json
var seriesSchemaJSON []byte

// seriesSchema is compiled once at init. The embedded schema is a
// build asset; failing to compile it is a programming error.
var seriesSchema = util.Must(gojsonschema.NewSchema(gojsonschema.NewBytesLoader(seriesSchemaJSON)))

// Schema validates stored series documents.
type Schema struct {
	schema *gojsonschema.Schema
}

// NewSeriesSchema returns the series document schema.
func NewSeriesSchema() *Schema {
	return &Schema{schema: seriesSchema}
}

// Validate checks a raw series document against the schema. The
// returned error wraps ErrInvalidSeries and lists every violation.
func (s *Schema) Validate(data []byte) error {
	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSeries, err)
	}

	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, resErr := range result.Errors() {
		violations = append(violations, resErr.String())
	}

	return fmt.Errorf("%w: %s", ErrInvalidSeries, strings.Join(violations, "; "))
}
