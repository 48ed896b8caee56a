package router

import (
	"fmt"
	"net/http"
	"strings"
)

type paramKind int

const (
	kindString paramKind = iota
	kindInt
	kindFloat
	kindBool
)

func (k paramKind) String() string {
	switch k {
	case kindString:
		return "string"
	case kindInt:
		return "int"
	case kindFloat:
		return "float"
	case kindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// param describes one plain parameter binding: a name looked up in
// the merged path+query values, a kind to coerce the raw value into,
// and an optional typed default.
type param struct {
	name string
	kind paramKind
	def  any
}

// segment is one compiled pattern segment, either a literal or a
// placeholder capturing under its name.
type segment struct {
	value string
	param bool
}

// roles records which special bindings a rule's handler takes.
type roles struct {
	request  bool
	rawBody  bool
	document bool
	pathList bool
	queryMap bool
}

// Rule is the compiled form of one (method, pattern, handler) triple,
// including its parameter binding plan. A rule is built exactly once
// by a RuleBuilder and is immutable afterwards, so concurrent
// dispatches may share it freely.
type Rule struct {
	pattern  string
	method   string
	status   int
	segments []segment
	wildcard bool
	params   []param
	roles    roles
	handler  HandlerFunc
}

// Pattern returns the original pattern text.
func (r *Rule) Pattern() string {
	return r.pattern
}

// Method returns the uppercased method.
func (r *Rule) Method() string {
	return r.method
}

// Status returns the default status code for successful matches.
func (r *Rule) Status() int {
	return r.status
}

func (r *Rule) String() string {
	return r.method + " " + r.pattern
}

// RuleBuilder assembles a rule's binding table before compiling it.
// Binding mistakes (duplicate names, duplicate roles) are programmer
// errors and panic at registration time.
type RuleBuilder struct {
	rule *Rule
}

// Get starts a rule matching GET requests, default status 200.
func Get(pattern string) *RuleBuilder {
	return Route(http.MethodGet, pattern)
}

// Post starts a rule matching POST requests, default status 201.
func Post(pattern string) *RuleBuilder {
	return Route(http.MethodPost, pattern).Status(http.StatusCreated)
}

// Delete starts a rule matching DELETE requests, default status 200.
func Delete(pattern string) *RuleBuilder {
	return Route(http.MethodDelete, pattern)
}

// Route starts a rule for an arbitrary method, default status 200.
func Route(method, pattern string) *RuleBuilder {
	return &RuleBuilder{
		rule: &Rule{
			pattern: pattern,
			method:  strings.ToUpper(method),
			status:  http.StatusOK,
		},
	}
}

// Status overrides the default status code for successful matches.
func (b *RuleBuilder) Status(code int) *RuleBuilder {
	b.rule.status = code
	return b
}

// String declares a plain string parameter with an optional default.
func (b *RuleBuilder) String(name string, def ...string) *RuleBuilder {
	return b.param(name, kindString, optional(def))
}

// Int declares a plain integer parameter with an optional default.
func (b *RuleBuilder) Int(name string, def ...int) *RuleBuilder {
	return b.param(name, kindInt, optional(def))
}

// Float declares a plain float parameter with an optional default.
func (b *RuleBuilder) Float(name string, def ...float64) *RuleBuilder {
	return b.param(name, kindFloat, optional(def))
}

// Bool declares a plain boolean parameter with an optional default.
func (b *RuleBuilder) Bool(name string, def ...bool) *RuleBuilder {
	return b.param(name, kindBool, optional(def))
}

// WithRequest binds the live request object into the handler args.
func (b *RuleBuilder) WithRequest() *RuleBuilder {
	return b.role("request", &b.rule.roles.request)
}

// RawBody binds the raw body bytes into the handler args.
func (b *RuleBuilder) RawBody() *RuleBuilder {
	return b.role("raw body", &b.rule.roles.rawBody)
}

// Document binds the body, decoded as a JSON document, into the
// handler args. The rule does not match when decoding fails or the
// payload is null.
func (b *RuleBuilder) Document() *RuleBuilder {
	return b.role("document", &b.rule.roles.document)
}

// PathList binds a copy of the full request path into the handler args.
func (b *RuleBuilder) PathList() *RuleBuilder {
	return b.role("path list", &b.rule.roles.pathList)
}

// QueryMap binds a copy of the full query map into the handler args.
func (b *RuleBuilder) QueryMap() *RuleBuilder {
	return b.role("query map", &b.rule.roles.queryMap)
}

// To compiles the rule against the given handler. The returned rule
// is immutable.
func (b *RuleBuilder) To(handler HandlerFunc) *Rule {
	if handler == nil {
		panic(fmt.Sprintf("router: rule %q has no handler", b.rule.pattern))
	}

	rule := b.rule
	rule.handler = handler

	parts := SplitPath(rule.pattern)

	if len(parts) > 0 && parts[len(parts)-1] == "{*}" {
		rule.wildcard = true
		parts = parts[:len(parts)-1]
	}

	for _, part := range parts {
		if len(part) > 2 && part[0] == '{' && part[len(part)-1] == '}' {
			rule.segments = append(rule.segments, segment{value: part[1 : len(part)-1], param: true})
		} else {
			rule.segments = append(rule.segments, segment{value: part})
		}
	}

	return rule
}

func (b *RuleBuilder) param(name string, kind paramKind, def any) *RuleBuilder {
	if name == "" {
		panic("router: parameter name must not be empty")
	}

	for _, p := range b.rule.params {
		if p.name == name {
			panic(fmt.Sprintf("router: duplicate parameter %q", name))
		}
	}

	b.rule.params = append(b.rule.params, param{name: name, kind: kind, def: def})

	return b
}

func (b *RuleBuilder) role(name string, flag *bool) *RuleBuilder {
	if *flag {
		panic(fmt.Sprintf("router: duplicate %s binding", name))
	}

	*flag = true

	return b
}

// optional unwraps a variadic default value.
func optional[V any](def []V) any {
	if len(def) == 0 {
		return nil
	}

	return def[0]
}
