package article

import "github.com/benedict-erwin/blog-service/internal/entities/user"

type (
	ArticleBase struct {
		Title     *string `json:"title" validate:"required"`
		Content   *string `json:"content" validate:"required"`
		Published *bool   `json:"published" validate:"required"`
		CreatorID *int64  `json:"creator_id" validate:"required"`
	}

	ArticleDisplay struct {
		Title     string    `json:"title"`
		Content   string    `json:"content"`
		Published bool      `json:"published"`
		User      user.User `json:"user"`
	}
)
