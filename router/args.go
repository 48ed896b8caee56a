package router

import "github.com/manifold-dev/manifold/document"

// Args carries the bound handler arguments produced by a successful
// match: coerced plain parameters plus any special-role bindings the
// rule declared.
type Args struct {
	values   map[string]any
	request  *Request
	body     []byte
	document *document.Document
	path     []string
	query    map[string]string
}

// Has reports whether a plain parameter was bound, either from the
// request or from a declared default.
func (a Args) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

// Value returns the bound value of a plain parameter, or nil.
func (a Args) Value(name string) any {
	return a.values[name]
}

// String returns a bound string parameter, or "" if unbound.
func (a Args) String(name string) string {
	v, _ := a.values[name].(string)
	return v
}

// Int returns a bound integer parameter, or 0 if unbound.
func (a Args) Int(name string) int {
	v, _ := a.values[name].(int)
	return v
}

// Float returns a bound float parameter, or 0 if unbound.
func (a Args) Float(name string) float64 {
	v, _ := a.values[name].(float64)
	return v
}

// Bool returns a bound boolean parameter, or false if unbound.
func (a Args) Bool(name string) bool {
	v, _ := a.values[name].(bool)
	return v
}

// Request returns the live request, if the rule declared it.
func (a Args) Request() *Request {
	return a.request
}

// Body returns the raw body bytes, if the rule declared them.
func (a Args) Body() []byte {
	return a.body
}

// Document returns the decoded body document, if the rule declared it.
func (a Args) Document() *document.Document {
	return a.document
}

// PathList returns a copy of the full request path, if the rule
// declared it.
func (a Args) PathList() []string {
	return a.path
}

// QueryMap returns a copy of the full query map, if the rule
// declared it.
func (a Args) QueryMap() map[string]string {
	return a.query
}
