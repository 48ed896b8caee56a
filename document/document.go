package document

import "encoding/json"

// Document wraps a raw JSON payload together with its decoded form.
type Document struct {
	raw   []byte
	value any
}

// Parse decodes data into a Document. The decoded value is nil if the
// payload is not valid JSON or is the literal null.
func Parse(data []byte) *Document {
	doc := &Document{raw: data}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return doc
	}

	doc.value = value

	return doc
}

// Value returns the decoded payload, or nil if there is none.
func (d *Document) Value() any {
	return d.value
}

// Map returns the decoded payload as a map, or nil if the payload
// is not a JSON object.
func (d *Document) Map() map[string]any {
	if m, ok := d.value.(map[string]any); ok {
		return m
	}

	return nil
}

// List returns the decoded payload as a list, or nil if the payload
// is not a JSON array.
func (d *Document) List() []any {
	if l, ok := d.value.([]any); ok {
		return l
	}

	return nil
}

// Raw returns the raw payload bytes.
func (d *Document) Raw() []byte {
	return d.raw
}
