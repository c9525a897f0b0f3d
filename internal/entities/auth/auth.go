package auth

type (
	// TokenRequest is the OAuth2 password form
	TokenRequest struct {
		Username string `form:"username" json:"username" validate:"required"`
		Password string `form:"password" json:"password" validate:"required"`
	}

	TokenResponse struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		UserID      int64  `json:"user_id"`
		Username    string `json:"username"`
	}
)
