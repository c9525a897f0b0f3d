// Package openapi collects route metadata and renders it as an OpenAPI 3
// document.
package openapi

import (
	"net/http"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// Parameter locations
const (
	InPath  = openapi3.ParameterInPath
	InQuery = openapi3.ParameterInQuery
)

// Param documents one path or query parameter
type Param struct {
	Name        string
	In          string
	Required    bool
	Schema      *openapi3.Schema
	Title       string
	Description string
	Deprecated  bool
}

// PathParam is always required
func PathParam(name string, schema *openapi3.Schema) Param {
	return Param{Name: name, In: InPath, Required: true, Schema: schema}
}

// QueryParam is optional unless Required is set afterwards
func QueryParam(name string, schema *openapi3.Schema) Param {
	return Param{Name: name, In: InQuery, Schema: schema}
}

// Response documents a non-default status
type Response struct {
	Status      int
	Description string
	Body        any
}

// Operation is the documentation of one route. Path uses Echo syntax
// (":id"); Body, Form and Response hold sample values whose types are
// reflected into schemas.
type Operation struct {
	Method              string
	Path                string
	OperationID         string
	Tags                []string
	Summary             string
	Description         string
	Status              int
	ResponseDescription string
	Params              []Param
	Body                any
	Form                any
	Response            any
	Responses           []Response
	Secured             bool
	Deprecated          bool
}

var (
	mu         sync.RWMutex
	operations []Operation
)

// Register records op for the generated document
func Register(op Operation) {
	if op.Method == "" {
		op.Method = http.MethodGet
	}
	if op.Status == 0 {
		op.Status = http.StatusOK
	}
	mu.Lock()
	defer mu.Unlock()
	operations = append(operations, op)
}

// Operations returns a copy of every registered operation
func Operations() []Operation {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Operation, len(operations))
	copy(out, operations)
	return out
}

// Reset forgets every registered operation
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	operations = nil
}

// PathTemplate converts an Echo route path into an OpenAPI path template
func PathTemplate(echoPath string) string {
	segs := strings.Split(echoPath, "/")
	for i, seg := range segs {
		if strings.HasPrefix(seg, ":") {
			segs[i] = "{" + seg[1:] + "}"
		}
	}
	return strings.Join(segs, "/")
}

// operationID derives an id from method and path: GET /blog/{id} -> get_blog__id_
func operationID(op Operation) string {
	if op.OperationID != "" {
		return op.OperationID
	}
	replacer := strings.NewReplacer("/", "_", "{", "_", "}", "_", ":", "_", "-", "_", ".", "_")
	return strings.ToLower(op.Method) + replacer.Replace(op.Path)
}
