package validation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// Rule checks an already parsed integer parameter
type Rule func(loc []any, v int) *ErrorDetail

// Gt requires v > limit
func Gt(limit int) Rule {
	return func(loc []any, v int) *ErrorDetail {
		if v > limit {
			return nil
		}
		d := bound("not_gt", "greater than", strconv.Itoa(limit), loc)
		return &d
	}
}

// Ge requires v >= limit
func Ge(limit int) Rule {
	return func(loc []any, v int) *ErrorDetail {
		if v >= limit {
			return nil
		}
		d := bound("not_ge", "greater than or equal to", strconv.Itoa(limit), loc)
		return &d
	}
}

// Lt requires v < limit
func Lt(limit int) Rule {
	return func(loc []any, v int) *ErrorDetail {
		if v < limit {
			return nil
		}
		d := bound("not_lt", "less than", strconv.Itoa(limit), loc)
		return &d
	}
}

// Le requires v <= limit
func Le(limit int) Rule {
	return func(loc []any, v int) *ErrorDetail {
		if v <= limit {
			return nil
		}
		d := bound("not_le", "less than or equal to", strconv.Itoa(limit), loc)
		return &d
	}
}

// Params collects request input for one handler. Every accessor records
// its own failure and returns a zero value, so a handler can read all
// parameters first and check Err once.
type Params struct {
	c       echo.Context
	details []ErrorDetail
}

// NewParams starts binding for the current request
func NewParams(c echo.Context) *Params {
	return &Params{c: c}
}

// Err returns a *Error holding every collected detail, or nil
func (p *Params) Err() error {
	if len(p.details) == 0 {
		return nil
	}
	return &Error{Details: p.details}
}

// Add appends externally produced details
func (p *Params) Add(details ...ErrorDetail) {
	p.details = append(p.details, details...)
}

// PathInt reads a required integer path segment
func (p *Params) PathInt(name string, rules ...Rule) int {
	loc := []any{LocPath, name}
	raw := p.c.Param(name)
	if raw == "" {
		p.Add(Missing(loc...))
		return 0
	}
	return p.parseInt(raw, loc, rules)
}

// PathEnum reads a path segment restricted to allowed values
func (p *Params) PathEnum(name string, allowed []string) string {
	loc := []any{LocPath, name}
	raw := p.c.Param(name)
	for _, a := range allowed {
		if raw == a {
			return raw
		}
	}
	p.Add(EnumError(loc, allowed))
	return ""
}

// QueryInt reads an integer query value falling back to def when absent
func (p *Params) QueryInt(name string, def int, rules ...Rule) int {
	raw, ok := p.query(name)
	if !ok {
		return def
	}
	return p.parseInt(raw, []any{LocQuery, name}, rules)
}

// QueryIntPtr reads an optional integer query value, nil when absent
func (p *Params) QueryIntPtr(name string, rules ...Rule) *int {
	raw, ok := p.query(name)
	if !ok {
		return nil
	}
	before := len(p.details)
	v := p.parseInt(raw, []any{LocQuery, name}, rules)
	if len(p.details) > before {
		return nil
	}
	return &v
}

// QueryBool reads a boolean query value falling back to def when absent
func (p *Params) QueryBool(name string, def bool) bool {
	raw, ok := p.query(name)
	if !ok {
		return def
	}
	b, valid := ParseBool(raw)
	if !valid {
		p.Add(typeError(reflect.Bool, []any{LocQuery, name}))
		return def
	}
	return b
}

// QueryString reads an untyped query value falling back to def when absent
func (p *Params) QueryString(name, def string) string {
	raw, ok := p.query(name)
	if !ok {
		return def
	}
	return raw
}

// QueryStringPtr reads an optional string query value, nil when absent
func (p *Params) QueryStringPtr(name string) *string {
	raw, ok := p.query(name)
	if !ok {
		return nil
	}
	return &raw
}

// QueryStrings reads a repeated query key (?v=a&v=b), def when absent
func (p *Params) QueryStrings(name string, def []string) []string {
	values, ok := p.c.QueryParams()[name]
	if !ok || len(values) == 0 {
		out := make([]string, len(def))
		copy(out, def)
		return out
	}
	return values
}

func (p *Params) query(name string) (string, bool) {
	values, ok := p.c.QueryParams()[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func (p *Params) parseInt(raw string, loc []any, rules []Rule) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		p.Add(typeError(reflect.Int, loc))
		return 0
	}
	for _, rule := range rules {
		if d := rule(loc, v); d != nil {
			p.Add(*d)
			return v
		}
	}
	return v
}

// Body decodes the JSON request body into dst and validates it. dst must be
// a pointer to a struct. Leaves are coerced to the field types and every
// failing leaf is reported.
func (p *Params) Body(dst any) {
	p.body(dst, false)
}

// EmbeddedBody is Body for a body holding several named values. An absent
// body reports each required value instead of the body itself.
func (p *Params) EmbeddedBody(dst any) {
	p.body(dst, true)
}

func (p *Params) body(dst any, embedded bool) {
	raw, err := io.ReadAll(p.c.Request().Body)
	if err != nil {
		p.Add(ErrorDetail{Loc: []any{LocBody}, Msg: err.Error(), Type: "value_error"})
		return
	}

	var tree any
	if len(bytes.TrimSpace(raw)) > 0 {
		if tree, err = decodeTree(raw); err != nil {
			p.Add(decodeError(err))
			return
		}
	}
	if tree == nil {
		if !embedded {
			p.Add(Missing(LocBody))
			return
		}
		tree = map[string]any{}
	}

	target := reflect.ValueOf(dst).Elem()
	c := newCoercer()
	v, ok := c.value(tree, target.Type(), []any{LocBody})
	if !ok {
		// The body itself has the wrong shape, field rules would only repeat it
		p.Add(c.details...)
		return
	}
	target.Set(v)

	details := c.details
	if err := p.c.Validate(dst); err != nil {
		for _, d := range FromValidator(err, LocBody) {
			if !c.failed[locKey(d.Loc)] {
				details = append(details, d)
			}
		}
	}
	sortByField(details, target.Type())
	p.Add(details...)
}

// Form binds an urlencoded or multipart form into dst using form tags
func (p *Params) Form(dst any) {
	binder := &echo.DefaultBinder{}
	if err := binder.BindBody(p.c, dst); err != nil {
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != 415 {
			p.Add(ErrorDetail{Loc: []any{LocBody}, Msg: fmt.Sprint(err), Type: "value_error"})
			return
		}
		// Unsupported media type leaves dst empty; required fields report below
	}
	if err := p.c.Validate(dst); err != nil {
		p.Add(FromValidator(err, LocBody)...)
	}
}

// ParseBool accepts the spellings browsers and scripts commonly send
func ParseBool(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "t", "yes", "y", "on":
		return true, true
	case "0", "false", "f", "no", "n", "off":
		return false, true
	}
	return false, false
}
