package openapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/invopop/yaml"
)

const (
	// SecuritySchemeName is the scheme referenced by secured operations
	SecuritySchemeName = "HTTPBearer"

	formContentType = "application/x-www-form-urlencoded"
)

// Info carries document level metadata
type Info struct {
	Title       string
	Version     string
	Description string
}

// Build renders every registered operation into a validated document
func Build(ctx context.Context, info Info) (*openapi3.T, error) {
	gen := newGenerator()
	item, body := validationErrorSchemas()
	gen.schemas["ValidationError"] = openapi3.NewSchemaRef("", item)
	gen.schemas["HTTPValidationError"] = openapi3.NewSchemaRef("", body)

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       info.Title,
			Version:     info.Version,
			Description: info.Description,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: gen.schemas,
			SecuritySchemes: openapi3.SecuritySchemes{
				SecuritySchemeName: &openapi3.SecuritySchemeRef{Value: openapi3.NewJWTSecurityScheme()},
			},
		},
	}

	ops := Operations()
	sort.SliceStable(ops, func(i, j int) bool { return ops[i].Path < ops[j].Path })

	seen := map[string]bool{}
	for _, op := range ops {
		path := PathTemplate(op.Path)
		key := op.Method + " " + path
		if seen[key] {
			continue
		}
		seen[key] = true

		pathItem := doc.Paths.Value(path)
		if pathItem == nil {
			pathItem = &openapi3.PathItem{}
			doc.Paths.Set(path, pathItem)
		}
		o, err := gen.operation(op)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", op.Method, path, err)
		}
		pathItem.SetOperation(op.Method, o)
	}

	if err := Validate(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (g *generator) operation(op Operation) (*openapi3.Operation, error) {
	o := &openapi3.Operation{
		OperationID: operationID(op),
		Tags:        op.Tags,
		Summary:     op.Summary,
		Description: op.Description,
		Deprecated:  op.Deprecated,
	}

	for _, p := range op.Params {
		o.Parameters = append(o.Parameters, &openapi3.ParameterRef{Value: parameter(p)})
	}

	switch {
	case op.Body != nil:
		body, err := g.ref(op.Body)
		if err != nil {
			return nil, err
		}
		o.RequestBody = &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(body),
		}
	case op.Form != nil:
		form, err := g.ref(op.Form)
		if err != nil {
			return nil, err
		}
		o.RequestBody = &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().WithRequired(true).
				WithContent(openapi3.NewContentWithSchemaRef(form, []string{formContentType})),
		}
	}

	description := op.ResponseDescription
	if description == "" {
		description = "Successful Response"
	}
	success := openapi3.NewResponse().WithDescription(description)
	if op.Response != nil {
		ref, err := g.ref(op.Response)
		if err != nil {
			return nil, err
		}
		success = success.WithJSONSchemaRef(ref)
	} else {
		success = success.WithJSONSchema(&openapi3.Schema{})
	}
	opts := []openapi3.NewResponsesOption{
		openapi3.WithStatus(op.Status, &openapi3.ResponseRef{Value: success}),
	}

	for _, r := range op.Responses {
		resp := openapi3.NewResponse().WithDescription(r.Description)
		if r.Body != nil {
			ref, err := g.ref(r.Body)
			if err != nil {
				return nil, err
			}
			resp = resp.WithJSONSchemaRef(ref)
		}
		opts = append(opts, openapi3.WithStatus(r.Status, &openapi3.ResponseRef{Value: resp}))
	}

	if len(op.Params) > 0 || op.Body != nil || op.Form != nil {
		invalid := openapi3.NewResponse().
			WithDescription("Validation Error").
			WithJSONSchemaRef(openapi3.NewSchemaRef(componentPrefix+"HTTPValidationError", g.schemas["HTTPValidationError"].Value))
		opts = append(opts, openapi3.WithStatus(http.StatusUnprocessableEntity, &openapi3.ResponseRef{Value: invalid}))
	}
	o.Responses = openapi3.NewResponses(opts...)

	if op.Secured {
		o.Security = openapi3.NewSecurityRequirements().With(
			openapi3.NewSecurityRequirement().Authenticate(SecuritySchemeName),
		)
	}
	return o, nil
}

func parameter(p Param) *openapi3.Parameter {
	var param *openapi3.Parameter
	if p.In == InPath {
		param = openapi3.NewPathParameter(p.Name)
	} else {
		param = openapi3.NewQueryParameter(p.Name)
		param.Required = p.Required
	}

	schema := p.Schema
	if schema == nil {
		schema = openapi3.NewStringSchema()
	}
	if p.Title != "" {
		schema.Title = p.Title
	}
	param.Schema = openapi3.NewSchemaRef("", schema)
	param.Description = p.Description
	param.Deprecated = p.Deprecated
	return param
}

// Validate re-loads the document through the loader so refs resolve the way a client sees them
func Validate(ctx context.Context, doc *openapi3.T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal openapi document: %w", err)
	}
	loaded, err := openapi3.NewLoader().LoadFromData(raw)
	if err != nil {
		return fmt.Errorf("load openapi document: %w", err)
	}
	if err := loaded.Validate(ctx); err != nil {
		return fmt.Errorf("invalid openapi document: %w", err)
	}
	return nil
}

// JSON renders the document as indented JSON
func JSON(doc *openapi3.T) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// YAML renders the document as YAML
func YAML(doc *openapi3.T) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return yaml.JSONToYAML(raw)
}
