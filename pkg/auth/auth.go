package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/benedict-erwin/blog-service/config"
	"github.com/benedict-erwin/blog-service/pkg/logger"
	"github.com/benedict-erwin/blog-service/pkg/utils"
)

const defaultExpireMinutes = 15

var (
	secretKey     []byte
	signingMethod jwt.SigningMethod
	tokenTTL      time.Duration
	authMutex     sync.RWMutex

	ErrInvalidToken = errors.New("invalid token")
)

// InitAuth loads the signing secret, algorithm and token lifetime from config
func InitAuth() error {
	cfg := config.Get().Auth

	if cfg.SecretKey == "" {
		return fmt.Errorf("auth.secret_key is required")
	}

	alg := cfg.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return fmt.Errorf("unsupported auth algorithm '%s', expected HS256, HS384 or HS512", alg)
	}

	minutes := cfg.AccessTokenExpireMinutes
	if minutes <= 0 {
		minutes = defaultExpireMinutes
	}

	authMutex.Lock()
	secretKey = []byte(cfg.SecretKey)
	signingMethod = method
	tokenTTL = time.Duration(minutes) * time.Minute
	authMutex.Unlock()

	logger.Info().
		Str("algorithm", method.Alg()).
		Int("expire_minutes", minutes).
		Msg("Auth system initialized")
	return nil
}

// IssueToken signs an access token whose subject is the username
func IssueToken(username string) (string, time.Time, error) {
	authMutex.RLock()
	key, method, ttl := secretKey, signingMethod, tokenTTL
	authMutex.RUnlock()

	if key == nil {
		return "", time.Time{}, fmt.Errorf("auth not initialized")
	}

	now := utils.Now()
	expiresAt := now.Add(ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// VerifyJWT verifies signature, algorithm and expiry and returns the claims
func VerifyJWT(tokenString string) (*Claims, error) {
	authMutex.RLock()
	key, method := secretKey, signingMethod
	authMutex.RUnlock()

	if key == nil {
		return nil, fmt.Errorf("auth not initialized")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return key, nil },
		jwt.WithValidMethods([]string{method.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
