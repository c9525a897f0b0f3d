package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator"
	"github.com/goccy/go-json"
)

// Location roots used in ErrorDetail.Loc
const (
	LocPath  = "path"
	LocQuery = "query"
	LocBody  = "body"
)

// ErrorDetail is one entry of a 422 response
type ErrorDetail struct {
	Loc  []any          `json:"loc"`
	Msg  string         `json:"msg"`
	Type string         `json:"type"`
	Ctx  map[string]any `json:"ctx,omitempty"`
}

// Error carries every detail collected for a request
type Error struct {
	Details []ErrorDetail
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, fmt.Sprintf("%v: %s", d.Loc, d.Msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Missing builds the detail for an absent required value
func Missing(loc ...any) ErrorDetail {
	return ErrorDetail{Loc: loc, Msg: "field required", Type: "value_error.missing"}
}

// typeError describes a value whose JSON or text form cannot become the target kind
func typeError(kind reflect.Kind, loc []any) ErrorDetail {
	d := ErrorDetail{Loc: loc}
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		d.Msg, d.Type = "value is not a valid integer", "type_error.integer"
	case reflect.Float32, reflect.Float64:
		d.Msg, d.Type = "value is not a valid float", "type_error.float"
	case reflect.Bool:
		d.Msg, d.Type = "value could not be parsed to a boolean", "type_error.bool"
	case reflect.String:
		d.Msg, d.Type = "str type expected", "type_error.str"
	case reflect.Slice, reflect.Array:
		d.Msg, d.Type = "value is not a valid list", "type_error.list"
	default:
		d.Msg, d.Type = "value is not a valid dict", "type_error.dict"
	}
	return d
}

// noneNotAllowed reports null for a value that must be present
func noneNotAllowed(loc []any) ErrorDetail {
	return ErrorDetail{Loc: loc, Msg: "none is not an allowed value", Type: "type_error.none.not_allowed"}
}

// decodeError converts malformed JSON into a body detail
func decodeError(err error) ErrorDetail {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return ErrorDetail{
			Loc:  []any{LocBody, syntaxErr.Offset},
			Msg:  syntaxErr.Error(),
			Type: "value_error.jsondecode",
			Ctx:  map[string]any{"pos": syntaxErr.Offset},
		}
	}
	return ErrorDetail{Loc: []any{LocBody}, Msg: err.Error(), Type: "value_error.jsondecode"}
}

// FromValidator converts validator field errors, rooting each location at root
func FromValidator(err error, root string) []ErrorDetail {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []ErrorDetail{{Loc: []any{root}, Msg: err.Error(), Type: "value_error"}}
	}

	details := make([]ErrorDetail, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, fromFieldError(fe, root))
	}
	return details
}

func fromFieldError(fe validator.FieldError, root string) ErrorDetail {
	loc := append([]any{root}, namespaceLoc(fe.Namespace())...)
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return Missing(loc...)
	case "min", "max", "len":
		return lengthOrBound(fe.Tag(), fe.Kind(), param, loc)
	case "gt":
		return bound("not_gt", "greater than", param, loc)
	case "gte":
		return bound("not_ge", "greater than or equal to", param, loc)
	case "lt":
		return bound("not_lt", "less than", param, loc)
	case "lte":
		return bound("not_le", "less than or equal to", param, loc)
	case "regexp":
		return ErrorDetail{
			Loc:  loc,
			Msg:  fmt.Sprintf("string does not match regex %q", param),
			Type: "value_error.str.regex",
			Ctx:  map[string]any{"pattern": param},
		}
	case "oneof":
		return EnumError(loc, strings.Fields(param))
	case "email":
		return ErrorDetail{Loc: loc, Msg: "value is not a valid email address", Type: "value_error.email"}
	default:
		return ErrorDetail{
			Loc:  loc,
			Msg:  fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
			Type: "value_error." + fe.Tag(),
		}
	}
}

// EnumError reports a value outside the permitted set
func EnumError(loc []any, allowed []string) ErrorDetail {
	quoted := make([]string, len(allowed))
	for i, a := range allowed {
		quoted[i] = "'" + a + "'"
	}
	return ErrorDetail{
		Loc:  loc,
		Msg:  "value is not a valid enumeration member; permitted: " + strings.Join(quoted, ", "),
		Type: "type_error.enum",
		Ctx:  map[string]any{"enum_values": allowed},
	}
}

func lengthOrBound(tag string, kind reflect.Kind, param string, loc []any) ErrorDetail {
	switch kind {
	case reflect.String:
		if tag == "max" {
			return ErrorDetail{
				Loc:  loc,
				Msg:  fmt.Sprintf("ensure this value has at most %s characters", param),
				Type: "value_error.any_str.max_length",
				Ctx:  map[string]any{"limit_value": limitValue(param)},
			}
		}
		return ErrorDetail{
			Loc:  loc,
			Msg:  fmt.Sprintf("ensure this value has at least %s characters", param),
			Type: "value_error.any_str.min_length",
			Ctx:  map[string]any{"limit_value": limitValue(param)},
		}
	case reflect.Slice, reflect.Array, reflect.Map:
		if tag == "max" {
			return ErrorDetail{
				Loc:  loc,
				Msg:  fmt.Sprintf("ensure this value has at most %s items", param),
				Type: "value_error.list.max_items",
				Ctx:  map[string]any{"limit_value": limitValue(param)},
			}
		}
		return ErrorDetail{
			Loc:  loc,
			Msg:  fmt.Sprintf("ensure this value has at least %s items", param),
			Type: "value_error.list.min_items",
			Ctx:  map[string]any{"limit_value": limitValue(param)},
		}
	}
	if tag == "max" {
		return bound("not_le", "less than or equal to", param, loc)
	}
	return bound("not_ge", "greater than or equal to", param, loc)
}

func bound(suffix, phrase, param string, loc []any) ErrorDetail {
	return ErrorDetail{
		Loc:  loc,
		Msg:  fmt.Sprintf("ensure this value is %s %s", phrase, param),
		Type: "value_error.number." + suffix,
		Ctx:  map[string]any{"limit_value": limitValue(param)},
	}
}

// limitValue keeps numeric limits numeric in the ctx object
func limitValue(param string) any {
	if n, err := strconv.Atoi(param); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(param, 64); err == nil {
		return f
	}
	return param
}

// namespaceLoc turns "CommentRequest.blog.tags[1]" into ["blog","tags",1]
func namespaceLoc(ns string) []any {
	segs := strings.Split(ns, ".")
	if len(segs) > 0 {
		segs = segs[1:]
	}

	loc := make([]any, 0, len(segs))
	for _, seg := range segs {
		name := seg
		var index string
		if i := strings.IndexByte(seg, '['); i >= 0 && strings.HasSuffix(seg, "]") {
			name, index = seg[:i], seg[i+1:len(seg)-1]
		}
		if name != "" {
			loc = append(loc, name)
		}
		if index != "" {
			if n, err := strconv.Atoi(index); err == nil {
				loc = append(loc, n)
			} else {
				loc = append(loc, index)
			}
		}
	}
	return loc
}
