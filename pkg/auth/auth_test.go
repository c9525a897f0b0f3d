package auth

import (
	"io"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benedict-erwin/blog-service/config"
	"github.com/benedict-erwin/blog-service/pkg/logger"
)

func setup(t *testing.T) {
	t.Helper()
	logger.SetOutput(io.Discard)
	cfg := config.Default()
	cfg.Auth.SecretKey = "test-secret"
	config.Set(cfg)
	require.NoError(t, InitAuth())
}

func TestIssueAndVerify(t *testing.T) {
	setup(t)

	token, expiresAt, err := IssueToken("alice")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username())
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	setup(t)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = VerifyJWT(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	setup(t)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = VerifyJWT(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsMissingExpiry(t *testing.T) {
	setup(t)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = VerifyJWT(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestInitAuthRejectsUnknownAlgorithm(t *testing.T) {
	logger.SetOutput(io.Discard)
	cfg := config.Default()
	cfg.Auth.Algorithm = "RS256"
	config.Set(cfg)

	assert.Error(t, InitAuth())
}

func TestPasswordHashing(t *testing.T) {
	hashed, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hashed)
	assert.True(t, VerifyPassword(hashed, "s3cret"))
	assert.False(t, VerifyPassword(hashed, "wrong"))
}
