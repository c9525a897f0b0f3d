package authentication

import (
	"context"
	"errors"
	"fmt"

	"github.com/benedict-erwin/blog-service/internal/entities/auth"
	"github.com/benedict-erwin/blog-service/internal/repository"
	"github.com/benedict-erwin/blog-service/internal/storage"
	authPkg "github.com/benedict-erwin/blog-service/pkg/auth"
	"github.com/benedict-erwin/blog-service/pkg/logger"
)

// ErrInvalidCredentials covers both an unknown username and a wrong password
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUnknownSubject means a valid token names a user that no longer exists
var ErrUnknownSubject = errors.New("token subject not found")

// Login checks the password and issues a bearer token
func Login(ctx context.Context, req *auth.TokenRequest) (*auth.TokenResponse, error) {
	log := logger.WithScope("Login")

	s := storage.Get()
	if s == nil {
		return nil, fmt.Errorf("storage not initialized")
	}

	u, err := s.Users().GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn().Str("username", req.Username).Msg("Login for unknown user")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !authPkg.VerifyPassword(u.Password, req.Password) {
		log.Warn().Str("username", req.Username).Msg("Login with wrong password")
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := authPkg.IssueToken(u.Username)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("user_id", u.ID).Time("expires_at", expiresAt).Msg("Token issued")
	return &auth.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserID:      u.ID,
		Username:    u.Username,
	}, nil
}

// CurrentUser resolves a bearer token to its user
func CurrentUser(ctx context.Context, token string) (*repository.User, error) {
	claims, err := authPkg.VerifyJWT(token)
	if err != nil {
		return nil, err
	}

	s := storage.Get()
	if s == nil {
		return nil, fmt.Errorf("storage not initialized")
	}
	u, err := s.Users().GetByUsername(ctx, claims.Username())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownSubject
		}
		return nil, err
	}
	return u, nil
}
