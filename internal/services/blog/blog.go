package blog

import (
	"fmt"

	"github.com/benedict-erwin/blog-service/internal/entities/blog"
	"github.com/benedict-erwin/blog-service/pkg/utils"
)

// MaxBlogID is the highest id GetBlog knows about
const MaxBlogID = 5

// RequiredFunctionality is evaluated for every route of the blog read router
func RequiredFunctionality() blog.RequiredFunctionality {
	return blog.RequiredFunctionality{Message: "Learning FastApi is important"}
}

// AllBlogs describes one page of the listing
func AllBlogs(page string, pageSize *int, req blog.RequiredFunctionality) blog.AllBlogsResponse {
	return blog.AllBlogsResponse{
		Message: fmt.Sprintf("All %s blogs on page %s", utils.ReprInt(pageSize), page),
		Req:     req,
	}
}

// Comment describes a comment lookup
func Comment(id, commentID int, valid bool, username *string) blog.MessageResponse {
	return blog.MessageResponse{
		Message: fmt.Sprintf("blog_id %d, comment_id %d, valid %s, username %s",
			id, commentID, utils.ReprBool(valid), utils.ReprString(username)),
	}
}

// BlogType echoes the requested category
func BlogType(t blog.BlogType) blog.MessageResponse {
	return blog.MessageResponse{Message: fmt.Sprintf("Blog type %s", t)}
}

// GetBlog returns the blog message, or ok=false with the not-found body
func GetBlog(id int) (blog.MessageResponse, blog.NotFoundResponse, bool) {
	if id > MaxBlogID {
		return blog.MessageResponse{}, blog.NotFoundResponse{Error: fmt.Sprintf("Blog %d not found", id)}, false
	}
	return blog.MessageResponse{Message: fmt.Sprintf("Blog with id %d", id)}, blog.NotFoundResponse{}, true
}

// CreateBlog echoes the submitted blog with defaults filled in
func CreateBlog(id int, model *blog.BlogModel, version int) blog.CreateBlogResponse {
	model.ApplyDefaults()
	return blog.CreateBlogResponse{ID: id, Data: model, Version: version}
}

// CreateComment echoes the comment request
func CreateComment(id, commentID int, req *blog.CommentRequest, commentTitle *int, versions []string) blog.CommentResponse {
	req.Blog.ApplyDefaults()
	return blog.CommentResponse{
		Blog:         req.Blog,
		ID:           id,
		CommentTitle: commentTitle,
		Content:      *req.Content,
		Version:      versions,
		CommentID:    commentID,
	}
}
