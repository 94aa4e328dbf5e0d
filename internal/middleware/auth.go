package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/models"
)

const (
	tokenIssuer      = "papertrade-api"
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	// UserIDKey is the gin context key holding the authenticated user's ID.
	UserIDKey = "userID"
	// UsernameKey is the gin context key holding the authenticated username.
	UsernameKey = "username"
)

// JWTClaims represents the claims in the JWT
type JWTClaims struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 access and refresh tokens.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenIssuer creates a TokenIssuer with the given signing secret and lifetimes.
func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// AccessTTL returns the lifetime of access tokens.
func (i *TokenIssuer) AccessTTL() time.Duration { return i.accessTTL }

// GenerateAccessToken generates a short-lived JWT access token for a user.
func (i *TokenIssuer) GenerateAccessToken(user *models.User) (string, error) {
	return i.sign(user, tokenTypeAccess, i.accessTTL)
}

// GenerateRefreshToken generates a long-lived JWT refresh token for a user.
func (i *TokenIssuer) GenerateRefreshToken(user *models.User) (string, error) {
	return i.sign(user, tokenTypeRefresh, i.refreshTTL)
}

func (i *TokenIssuer) sign(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	now := i.now()
	claims := &JWTClaims{
		UserID:    user.ID,
		Username:  user.Username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// ValidateAccessToken parses an access token. Refresh tokens are rejected.
func (i *TokenIssuer) ValidateAccessToken(tokenString string) (*JWTClaims, error) {
	return i.validate(tokenString, tokenTypeAccess)
}

// ValidateRefreshToken parses a refresh token. Access tokens are rejected.
func (i *TokenIssuer) ValidateRefreshToken(tokenString string) (*JWTClaims, error) {
	return i.validate(tokenString, tokenTypeRefresh)
}

func (i *TokenIssuer) validate(tokenString, tokenType string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(i.now))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid %s token", tokenType)
	}

	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("token is not a %s token", tokenType)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	return claims, nil
}

// HashToken returns the SHA-256 hex digest of a token string.
func HashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

func abortWithAppError(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.StatusCode, gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}

// AuthMiddleware verifies the bearer access token and sets the user in the context.
func AuthMiddleware(issuer *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithAppError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Authorization header is required"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortWithAppError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid authorization header format"))
			return
		}

		claims, err := issuer.ValidateAccessToken(parts[1])
		if err != nil {
			abortWithAppError(c, apperrors.ErrInvalidToken)
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UsernameKey, claims.Username)
		c.Next()
	}
}

