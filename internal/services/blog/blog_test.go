package blog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/benedict-erwin/blog-service/internal/entities/blog"
)

func TestMessages(t *testing.T) {
	size := 20
	name := "jack"

	assert.Equal(t, "All 20 blogs on page 2", AllBlogs("2", &size, RequiredFunctionality()).Message)
	assert.Equal(t, "All None blogs on page 1", AllBlogs("1", nil, RequiredFunctionality()).Message)
	assert.Equal(t, "Learning FastApi is important", AllBlogs("1", nil, RequiredFunctionality()).Req.Message)

	assert.Equal(t, "blog_id 1, comment_id 2, valid True, username jack", Comment(1, 2, true, &name).Message)
	assert.Equal(t, "blog_id 1, comment_id 2, valid False, username None", Comment(1, 2, false, nil).Message)

	assert.Equal(t, "Blog type howto", BlogType(blog.TypeHowTo).Message)
}

func TestGetBlog(t *testing.T) {
	msg, _, ok := GetBlog(5)
	assert.True(t, ok)
	assert.Equal(t, "Blog with id 5", msg.Message)

	_, nf, ok := GetBlog(6)
	assert.False(t, ok)
	assert.Equal(t, "Blog 6 not found", nf.Error)
}

func TestCreateBlogAppliesDefaults(t *testing.T) {
	title, content, nb := "t", "c", 1
	resp := CreateBlog(3, &blog.BlogModel{Title: &title, Content: &content, NbComments: &nb}, 1)

	assert.Equal(t, 3, resp.ID)
	assert.Equal(t, 1, resp.Version)
	assert.Equal(t, []string{}, resp.Data.Tags)
	assert.Equal(t, map[string]string{"key1": "val1"}, resp.Data.MetaData)
	assert.Nil(t, resp.Data.Published)
	assert.Nil(t, resp.Data.Image)
}
