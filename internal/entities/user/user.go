package user

type (
	// UserBase is the create/update payload
	UserBase struct {
		Username *string `json:"username" validate:"required"`
		Email    *string `json:"email" validate:"required"`
		Password *string `json:"password" validate:"required"`
	}

	// Article is the short article view nested in a user
	Article struct {
		Title     string `json:"title"`
		Content   string `json:"content"`
		Published bool   `json:"published"`
	}

	UserDisplay struct {
		Username string    `json:"username"`
		Email    string    `json:"email"`
		Items    []Article `json:"items"`
	}

	// User is the short user view nested in an article
	User struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
)
