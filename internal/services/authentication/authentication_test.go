package authentication

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benedict-erwin/blog-service/config"
	"github.com/benedict-erwin/blog-service/internal/entities/auth"
	"github.com/benedict-erwin/blog-service/internal/repository"
	"github.com/benedict-erwin/blog-service/internal/repository/memory"
	"github.com/benedict-erwin/blog-service/internal/storage"
	authPkg "github.com/benedict-erwin/blog-service/pkg/auth"
	"github.com/benedict-erwin/blog-service/pkg/logger"
)

func setup(t *testing.T) *memory.Store {
	t.Helper()
	logger.SetOutput(io.Discard)
	cfg := config.Default()
	cfg.Auth.SecretKey = "test-secret"
	config.Set(cfg)
	require.NoError(t, authPkg.InitAuth())

	mem := memory.New()
	hashed, err := authPkg.HashPassword("s3cret")
	require.NoError(t, err)
	require.NoError(t, mem.Users().Create(context.Background(), &repository.User{Username: "ada", Email: "ada@example.com", Password: hashed}))
	storage.Set(mem)
	t.Cleanup(func() { storage.Set(nil) })
	return mem
}

func TestLogin(t *testing.T) {
	setup(t)
	ctx := context.Background()

	resp, err := Login(ctx, &auth.TokenRequest{Username: "ada", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, int64(1), resp.UserID)
	assert.Equal(t, "ada", resp.Username)

	u, err := CurrentUser(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ada", u.Username)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	setup(t)
	ctx := context.Background()

	_, err := Login(ctx, &auth.TokenRequest{Username: "ada", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = Login(ctx, &auth.TokenRequest{Username: "nobody", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCurrentUserUnknownSubject(t *testing.T) {
	mem := setup(t)
	ctx := context.Background()

	token, _, err := authPkg.IssueToken("ada")
	require.NoError(t, err)
	require.NoError(t, mem.Users().Delete(ctx, 1))

	_, err = CurrentUser(ctx, token)
	assert.ErrorIs(t, err, ErrUnknownSubject)

	_, err = CurrentUser(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, authPkg.ErrInvalidToken)
}
