package openapi

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
)

const componentPrefix = "#/components/schemas/"

var timeType = reflect.TypeOf(time.Time{})

// Int returns an integer schema
func Int() *openapi3.Schema { return openapi3.NewIntegerSchema() }

// String returns a string schema
func String() *openapi3.Schema { return openapi3.NewStringSchema() }

// Any returns a schema without a type, for values accepted as-is
func Any() *openapi3.Schema { return &openapi3.Schema{} }

// Bool returns a boolean schema
func Bool() *openapi3.Schema { return openapi3.NewBoolSchema() }

// Enum returns a string schema restricted to values
func Enum(values ...string) *openapi3.Schema {
	s := openapi3.NewStringSchema()
	for _, v := range values {
		s.Enum = append(s.Enum, v)
	}
	return s
}

// StringList returns an array of strings schema
func StringList() *openapi3.Schema {
	return openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())
}

// WithDefault sets the default in its JSON form so the document validates it
func WithDefault(s *openapi3.Schema, v any) *openapi3.Schema {
	s.Default = jsonValue(v)
	return s
}

// WithBounds sets numeric limits; nil leaves a side open
func WithBounds(s *openapi3.Schema, min, max *float64, exclusiveMin, exclusiveMax bool) *openapi3.Schema {
	s.Min, s.Max = min, max
	s.ExclusiveMin, s.ExclusiveMax = exclusiveMin, exclusiveMax
	return s
}

// Float is a helper for WithBounds
func Float(v float64) *float64 { return &v }

func jsonValue(v any) any {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}

// generator collects component schemas for one document
type generator struct {
	schemas openapi3.Schemas
}

func newGenerator() *generator {
	return &generator{schemas: openapi3.Schemas{}}
}

// ref returns a $ref for named structs and an inline schema for everything
// else. Struct schemas land in g.schemas.
func (g *generator) ref(v any) (*openapi3.SchemaRef, error) {
	ref, err := openapi3gen.NewSchemaRefForValue(v, g.schemas,
		openapi3gen.SchemaCustomizer(customizeSchema),
		openapi3gen.CreateComponentSchemas(openapi3gen.ExportComponentSchemasOptions{
			ExportComponentSchemas: true,
			ExportTopLevelSchema:   true,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("schema for %T: %w", v, err)
	}
	return ref, nil
}

// customizeSchema maps validate and default tags onto the generated struct
// schema. It runs once per struct after its properties exist.
func customizeSchema(_ string, t reflect.Type, _ reflect.StructTag, s *openapi3.Schema) error {
	if t.Kind() != reflect.Struct || t == timeType {
		return nil
	}
	s.Title = t.Name()

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := jsonName(f)
		prop, ok := s.Properties[name]
		if name == "" || !ok || prop == nil {
			continue
		}

		rules := parseRules(f.Tag.Get("validate"))
		if _, ok := rules["required"]; ok {
			s.Required = append(s.Required, name)
		}

		// Component refs stay untouched, constraints only apply to inline schemas
		if strings.HasPrefix(prop.Ref, componentPrefix) || prop.Value == nil {
			continue
		}
		applyRules(prop.Value, f.Type, rules)
		if def, ok := f.Tag.Lookup("default"); ok {
			var v any
			if err := json.Unmarshal([]byte(def), &v); err != nil {
				return fmt.Errorf("default of %s.%s: %w", t.Name(), f.Name, err)
			}
			prop.Value.Default = v
		}
	}
	return nil
}

// jsonName matches the property names openapi3gen derives
func jsonName(f reflect.StructField) string {
	if !f.IsExported() {
		return ""
	}
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// parseRules splits a validate tag into rule -> parameter
func parseRules(tag string) map[string]string {
	rules := map[string]string{}
	if tag == "" {
		return rules
	}
	for _, part := range strings.Split(tag, ",") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 {
			rules[kv[0]] = kv[1]
		} else {
			rules[kv[0]] = ""
		}
	}
	return rules
}

func applyRules(s *openapi3.Schema, t reflect.Type, rules map[string]string) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for rule, param := range rules {
		n, numErr := strconv.ParseFloat(param, 64)
		switch rule {
		case "min", "max":
			if numErr != nil {
				continue
			}
			applyLength(s, t.Kind(), rule == "min", n)
		case "gt", "gte":
			if numErr == nil {
				s.Min, s.ExclusiveMin = Float(n), rule == "gt"
			}
		case "lt", "lte":
			if numErr == nil {
				s.Max, s.ExclusiveMax = Float(n), rule == "lt"
			}
		case "regexp":
			s.Pattern = param
		case "oneof":
			for _, v := range strings.Fields(param) {
				s.Enum = append(s.Enum, v)
			}
		case "email":
			s.Format = "email"
		}
	}
}

func applyLength(s *openapi3.Schema, kind reflect.Kind, isMin bool, n float64) {
	u := uint64(n)
	switch kind {
	case reflect.String:
		if isMin {
			s.MinLength = u
		} else {
			s.MaxLength = &u
		}
	case reflect.Slice, reflect.Array:
		if isMin {
			s.MinItems = u
		} else {
			s.MaxItems = &u
		}
	default:
		if isMin {
			s.Min = Float(n)
		} else {
			s.Max = Float(n)
		}
	}
}

// validationErrorSchemas describes the 422 body
func validationErrorSchemas() (item, body *openapi3.Schema) {
	loc := openapi3.NewArraySchema()
	loc.Title = "Location"
	loc.Items = openapi3.NewSchemaRef("", &openapi3.Schema{
		AnyOf: openapi3.SchemaRefs{
			openapi3.NewSchemaRef("", openapi3.NewStringSchema()),
			openapi3.NewSchemaRef("", openapi3.NewIntegerSchema()),
		},
	})

	item = openapi3.NewObjectSchema()
	item.Title = "ValidationError"
	item.Properties = openapi3.Schemas{
		"loc":  openapi3.NewSchemaRef("", loc),
		"msg":  openapi3.NewSchemaRef("", openapi3.NewStringSchema()),
		"type": openapi3.NewSchemaRef("", openapi3.NewStringSchema()),
	}
	item.Required = []string{"loc", "msg", "type"}

	detail := openapi3.NewArraySchema()
	detail.Title = "Detail"
	detail.Items = openapi3.NewSchemaRef(componentPrefix+"ValidationError", item)

	body = openapi3.NewObjectSchema()
	body.Title = "HTTPValidationError"
	body.Properties = openapi3.Schemas{"detail": openapi3.NewSchemaRef("", detail)}
	return item, body
}
