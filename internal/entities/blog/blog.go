package blog

// BlogType enumerates the accepted /blog/type/{type} values
type BlogType string

const (
	TypeShort BlogType = "short"
	TypeStory BlogType = "story"
	TypeHowTo BlogType = "howto"
)

// BlogTypes lists every BlogType in declaration order
func BlogTypes() []string {
	return []string{string(TypeShort), string(TypeStory), string(TypeHowTo)}
}

// RequiredFunctionality is attached to every blog read
type RequiredFunctionality struct {
	Message string `json:"message"`
}

type (
	Image struct {
		URL  *string `json:"url" validate:"required"`
		Alis *string `json:"alis" validate:"required"`
	}

	BlogModel struct {
		Title      *string           `json:"title" validate:"required"`
		Content    *string           `json:"content" validate:"required"`
		NbComments *int              `json:"nb_comments" validate:"required"`
		Published  *bool             `json:"published"`
		Tags       []string          `json:"tags" default:"[]"`
		MetaData   map[string]string `json:"metaData" default:"{\"key1\":\"val1\"}"`
		Image      *Image            `json:"image"`
	}

	// CommentRequest is the embedded body of the comment endpoint
	CommentRequest struct {
		Blog    *BlogModel `json:"blog" validate:"required"`
		Content *string    `json:"content" validate:"required,min=10,max=15,regexp=^[a-z\\s]*$"`
	}
)

// ApplyDefaults fills the optional collections the way an omitted field reads back
func (b *BlogModel) ApplyDefaults() {
	if b.Tags == nil {
		b.Tags = []string{}
	}
	if b.MetaData == nil {
		b.MetaData = map[string]string{"key1": "val1"}
	}
}

type (
	AllBlogsResponse struct {
		Message string                `json:"message"`
		Req     RequiredFunctionality `json:"req"`
	}

	MessageResponse struct {
		Message string `json:"message"`
	}

	NotFoundResponse struct {
		Error string `json:"error"`
	}

	CreateBlogResponse struct {
		ID      int        `json:"id"`
		Data    *BlogModel `json:"data"`
		Version int        `json:"version"`
	}

	CommentResponse struct {
		Blog         *BlogModel `json:"blog"`
		ID           int        `json:"id"`
		CommentTitle *int       `json:"comment_title"`
		Content      string     `json:"content"`
		Version      []string   `json:"version"`
		CommentID    int        `json:"comment_id"`
	}
)
