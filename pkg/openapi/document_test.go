package openapi

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	Title   *string           `json:"title" validate:"required"`
	Body    *string           `json:"body" validate:"required,min=10,max=15,regexp=^[a-z\\s]*$"`
	Tags    []string          `json:"tags" default:"[]"`
	Meta    map[string]string `json:"meta" default:"{\"key1\":\"val1\"}"`
	Ignored string            `json:"-"`
}

type noteReply struct {
	ID   int   `json:"id"`
	Note *note `json:"note"`
}

type credentials struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

func registerSample(t *testing.T) {
	t.Helper()
	Reset()
	t.Cleanup(Reset)

	title := QueryParam("noteTitle", Int())
	title.Title = "Title of the note"
	title.Deprecated = true

	Register(Operation{
		Method:              http.MethodGet,
		Path:                "/notes/all",
		Tags:                []string{"notes"},
		Summary:             "Retrieve all notes",
		ResponseDescription: "The list of notes",
		Params: []Param{
			QueryParam("page", WithDefault(Any(), 1)),
			QueryParam("page_size", Int()),
		},
	})
	Register(Operation{
		Method: http.MethodPost,
		Path:   "/notes/:id",
		Tags:   []string{"notes"},
		Params: []Param{
			PathParam("id", WithBounds(Int(), Float(5), Float(10), true, false)),
			title,
			QueryParam("v", WithDefault(StringList(), []string{"1.0", "1.1"})),
		},
		Body:     note{},
		Response: noteReply{},
	})
	Register(Operation{
		Method:   http.MethodPost,
		Path:     "/token",
		Form:     credentials{},
		Response: map[string]string{},
		Responses: []Response{
			{Status: http.StatusNotFound, Description: "Invalid credentials"},
		},
	})
	Register(Operation{Path: "/secret", Secured: true})
}

func TestBuild(t *testing.T) {
	registerSample(t)

	doc, err := Build(context.Background(), Info{Title: "notes", Version: "1.0.0"})
	require.NoError(t, err)

	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.Equal(t, "notes", doc.Info.Title)

	all := doc.Paths.Value("/notes/all")
	require.NotNil(t, all)
	require.NotNil(t, all.Get)
	assert.Equal(t, "Retrieve all notes", all.Get.Summary)
	assert.Equal(t, "get_notes_all", all.Get.OperationID)
	assert.Equal(t, "The list of notes", *all.Get.Responses.Value("200").Value.Description)
	assert.NotNil(t, all.Get.Responses.Value("422"))
	assert.EqualValues(t, 1, all.Get.Parameters.GetByInAndName("query", "page").Schema.Value.Default)

	post := doc.Paths.Value("/notes/{id}")
	require.NotNil(t, post)
	require.NotNil(t, post.Post)
	id := post.Post.Parameters.GetByInAndName("path", "id")
	require.NotNil(t, id)
	assert.True(t, id.Required)
	assert.Equal(t, 5.0, *id.Schema.Value.Min)
	assert.True(t, id.Schema.Value.ExclusiveMin)
	assert.Equal(t, 10.0, *id.Schema.Value.Max)

	deprecated := post.Post.Parameters.GetByInAndName("query", "noteTitle")
	require.NotNil(t, deprecated)
	assert.True(t, deprecated.Deprecated)
	assert.Equal(t, "Title of the note", deprecated.Schema.Value.Title)

	body := post.Post.RequestBody.Value.Content.Get("application/json")
	require.NotNil(t, body)
	assert.Equal(t, "#/components/schemas/note", body.Schema.Ref)

	schema := doc.Components.Schemas["note"].Value
	assert.ElementsMatch(t, []string{"title", "body"}, schema.Required)
	assert.NotContains(t, schema.Properties, "Ignored")
	bodyProp := schema.Properties["body"].Value
	assert.Equal(t, uint64(10), bodyProp.MinLength)
	assert.Equal(t, uint64(15), *bodyProp.MaxLength)
	assert.Equal(t, `^[a-z\s]*$`, bodyProp.Pattern)
	assert.Equal(t, []interface{}{}, schema.Properties["tags"].Value.Default)
	assert.Equal(t, map[string]interface{}{"key1": "val1"}, schema.Properties["meta"].Value.Default)

	assert.Equal(t, "note", schema.Title)
	assert.Nil(t, schema.Properties["tags"].Value.Items.Value.Default)

	reply := doc.Components.Schemas["noteReply"]
	require.NotNil(t, reply)
	assert.Equal(t, "#/components/schemas/note", reply.Value.Properties["note"].Ref)
	assert.Empty(t, reply.Value.Required)

	token := doc.Paths.Value("/token").Post
	require.NotNil(t, token)
	form := token.RequestBody.Value.Content.Get("application/x-www-form-urlencoded")
	require.NotNil(t, form)
	assert.Equal(t, "#/components/schemas/credentials", form.Schema.Ref)
	assert.ElementsMatch(t, []string{"username", "password"}, doc.Components.Schemas["credentials"].Value.Required)
	assert.NotNil(t, token.Responses.Value("404"))

	secret := doc.Paths.Value("/secret").Get
	require.NotNil(t, secret)
	require.NotNil(t, secret.Security)
	assert.Contains(t, (*secret.Security)[0], SecuritySchemeName)
	assert.Nil(t, secret.Responses.Value("422"))
}

func TestBuildDeduplicates(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Register(Operation{Path: "/x", Summary: "first"})
	Register(Operation{Path: "/x", Summary: "second"})

	doc, err := Build(context.Background(), Info{Title: "t", Version: "1"})
	require.NoError(t, err)
	assert.Equal(t, "first", doc.Paths.Value("/x").Get.Summary)
}

func TestRenderers(t *testing.T) {
	registerSample(t)

	doc, err := Build(context.Background(), Info{Title: "notes", Version: "1.0.0"})
	require.NoError(t, err)

	raw, err := JSON(doc)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"openapi": "3.0.3"`)
	assert.Contains(t, string(raw), `"HTTPValidationError"`)

	y, err := YAML(doc)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(y), "openapi: 3.0.3"))
	assert.Contains(t, string(y), "/notes/all:")
}

func TestPathTemplate(t *testing.T) {
	assert.Equal(t, "/blog/{id}/comments/{comment_id}", PathTemplate("/blog/:id/comments/:comment_id"))
	assert.Equal(t, "/hello", PathTemplate("/hello"))
}

func TestOperationID(t *testing.T) {
	assert.Equal(t, "get_blog__id", operationID(Operation{Method: "GET", Path: "/blog/:id"}))
	assert.Equal(t, "custom", operationID(Operation{OperationID: "custom"}))
}
