package validation

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

var errExtraData = errors.New("Extra data")

// decodeTree parses raw into maps, slices and json.Number leaves
func decodeTree(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, err
	}
	if !json.Valid(raw) {
		return nil, errExtraData
	}
	return tree, nil
}

// coercer converts a decoded JSON tree into typed Go values. Leaves are
// read leniently: "3" is an int, 3 is a string and "yes" is a bool. Every
// leaf that cannot be converted records one detail at its full location.
type coercer struct {
	details []ErrorDetail
	failed  map[string]bool
}

func newCoercer() *coercer {
	return &coercer{failed: map[string]bool{}}
}

func (c *coercer) add(d ErrorDetail) {
	c.details = append(c.details, d)
	c.failed[locKey(d.Loc)] = true
}

func locKey(loc []any) string {
	return fmt.Sprint(loc)
}

func appendLoc(loc []any, seg any) []any {
	out := make([]any, len(loc), len(loc)+1)
	copy(out, loc)
	return append(out, seg)
}

// value converts v into t. ok is false when nothing usable was produced.
func (c *coercer) value(v any, t reflect.Type, loc []any) (reflect.Value, bool) {
	if t.Kind() == reflect.Ptr {
		if v == nil {
			return reflect.Zero(t), true
		}
		inner, ok := c.value(v, t.Elem(), loc)
		if !ok {
			return reflect.Zero(t), false
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(inner)
		return ptr, true
	}
	if v == nil {
		c.add(noneNotAllowed(loc))
		return reflect.Zero(t), false
	}

	out := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Struct:
		return c.object(v, t, loc)
	case reflect.Slice:
		return c.list(v, t, loc)
	case reflect.Map:
		return c.mapping(v, t, loc)
	case reflect.String:
		if s, ok := coerceString(v); ok {
			out.SetString(s)
			return out, true
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n, ok := coerceInt(v); ok && !out.OverflowInt(n) {
			out.SetInt(n)
			return out, true
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n, ok := coerceInt(v); ok && n >= 0 && !out.OverflowUint(uint64(n)) {
			out.SetUint(uint64(n))
			return out, true
		}
	case reflect.Float32, reflect.Float64:
		if f, ok := coerceFloat(v); ok && !out.OverflowFloat(f) {
			out.SetFloat(f)
			return out, true
		}
	case reflect.Bool:
		if b, ok := coerceBool(v); ok {
			out.SetBool(b)
			return out, true
		}
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return reflect.ValueOf(v), true
		}
	}

	c.add(typeError(t.Kind(), loc))
	return reflect.Zero(t), false
}

// object fills the exported fields of t from a JSON object. Unknown keys
// are ignored; a struct with failing fields is still returned so the
// remaining fields get validated.
func (c *coercer) object(v any, t reflect.Type, loc []any) (reflect.Value, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		c.add(typeError(reflect.Struct, loc))
		return reflect.Zero(t), false
	}

	out := reflect.New(t).Elem()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := bodyFieldName(f)
		if name == "" {
			continue
		}
		floc := appendLoc(loc, name)
		required := hasRule(f.Tag.Get("validate"), "required")
		def, hasDefault := f.Tag.Lookup("default")

		raw, present := m[name]
		switch {
		case !present && required:
			c.add(Missing(floc...))
		case !present && hasDefault:
			if dv, ok := defaultValue(def, f.Type); ok {
				out.Field(i).Set(dv)
			}
		case !present:
		case raw == nil && (required || hasDefault || f.Type.Kind() != reflect.Ptr):
			c.add(noneNotAllowed(floc))
		case raw == nil:
			// optional, stays nil
		default:
			if fv, ok := c.value(raw, f.Type, floc); ok {
				out.Field(i).Set(fv)
			}
		}
	}
	return out, true
}

func (c *coercer) list(v any, t reflect.Type, loc []any) (reflect.Value, bool) {
	items, ok := v.([]any)
	if !ok {
		c.add(typeError(reflect.Slice, loc))
		return reflect.Zero(t), false
	}

	out := reflect.MakeSlice(t, len(items), len(items))
	for i, item := range items {
		if ev, ok := c.value(item, t.Elem(), appendLoc(loc, i)); ok {
			out.Index(i).Set(ev)
		}
	}
	return out, true
}

func (c *coercer) mapping(v any, t reflect.Type, loc []any) (reflect.Value, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		c.add(typeError(reflect.Map, loc))
		return reflect.Zero(t), false
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := reflect.MakeMapWithSize(t, len(m))
	for _, k := range keys {
		kloc := appendLoc(loc, k)
		kv, kok := c.value(k, t.Key(), kloc)
		if !kok {
			continue
		}
		if ev, ok := c.value(m[k], t.Elem(), kloc); ok {
			out.SetMapIndex(kv, ev)
		}
	}
	return out, true
}

// defaultValue reads a default tag; a tag that does not fit the field is ignored
func defaultValue(tag string, t reflect.Type) (reflect.Value, bool) {
	tree, err := decodeTree([]byte(tag))
	if err != nil {
		return reflect.Value{}, false
	}
	c := newCoercer()
	v, ok := c.value(tree, t, nil)
	return v, ok && len(c.details) == 0
}

func bodyFieldName(f reflect.StructField) string {
	if !f.IsExported() {
		return ""
	}
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

func hasRule(tag, rule string) bool {
	for _, part := range strings.Split(tag, ",") {
		if strings.SplitN(part, "=", 2)[0] == rule {
			return true
		}
	}
	return false
}

func coerceString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case json.Number:
		s := x.String()
		if !strings.ContainsAny(s, ".eE") {
			return s, true
		}
		f, err := x.Float64()
		if err != nil {
			return s, true
		}
		return formatFloat(f), true
	case float64:
		return formatFloat(x), true
	case bool:
		if x {
			return "True", true
		}
		return "False", true
	}
	return "", false
}

// formatFloat renders f the shortest way, switching to an exponent outside 1e-4..1e16
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	e := strconv.FormatFloat(f, 'e', -1, 64)
	_, expPart, _ := strings.Cut(e, "e")
	if exp, err := strconv.Atoi(expPart); err == nil && (exp < -4 || exp >= 16) {
		return e
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func coerceInt(v any) (int64, bool) {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n, true
		}
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		return truncate(f)
	case float64:
		return truncate(x)
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		return n, err == nil
	}
	return 0, false
}

func truncate(f float64) (int64, bool) {
	if math.IsNaN(f) || f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

func coerceFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case float64:
		return x, true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	}
	return 0, false
}

func coerceBool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return false, false
		}
		return numericBool(f)
	case float64:
		return numericBool(x)
	case string:
		return ParseBool(x)
	}
	return false, false
}

func numericBool(f float64) (bool, bool) {
	switch f {
	case 1:
		return true, true
	case 0:
		return false, true
	}
	return false, false
}

// sortByField orders body details the way the fields are declared in t,
// list positions by index
func sortByField(details []ErrorDetail, t reflect.Type) {
	keys := make([][]int, len(details))
	for i, d := range details {
		keys[i] = fieldOrder(t, d.Loc)
	}
	idx := make([]int, len(details))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return lessOrder(keys[idx[a]], keys[idx[b]])
	})
	sorted := make([]ErrorDetail, len(details))
	for i, j := range idx {
		sorted[i] = details[j]
	}
	copy(details, sorted)
}

func fieldOrder(t reflect.Type, loc []any) []int {
	key := make([]int, 0, len(loc))
	if len(loc) > 0 {
		loc = loc[1:]
	}
	for _, seg := range loc {
		for t != nil && t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		switch s := seg.(type) {
		case int:
			key = append(key, s)
			if t != nil && (t.Kind() == reflect.Slice || t.Kind() == reflect.Array) {
				t = t.Elem()
			}
		case string:
			pos := 0
			switch {
			case t != nil && t.Kind() == reflect.Struct:
				pos, t = fieldPosition(t, s)
			case t != nil && t.Kind() == reflect.Map:
				t = t.Elem()
			default:
				t = nil
			}
			key = append(key, pos)
		}
	}
	return key
}

func fieldPosition(t reflect.Type, name string) (int, reflect.Type) {
	for i := 0; i < t.NumField(); i++ {
		if bodyFieldName(t.Field(i)) == name {
			return i, t.Field(i).Type
		}
	}
	return t.NumField(), nil
}

func lessOrder(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
