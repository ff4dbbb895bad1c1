package utils

import (
	"errors"
	"strconv"
	"time"

	"veridesk/internal/config"
	"veridesk/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
	tokenIssuer     = "veridesk-api"
)

func jwtSecret() []byte {
	return []byte(config.GetEnv("JWT_SECRET", "veridesk"))
}

// GenerateTokens mints the access/refresh token pair for the given
// claims. Both tokens carry the user's token version so a logout or
// password change invalidates them together.
func GenerateTokens(claims *models.UserClaims) (accessToken string, refreshToken string, err error) {
	now := time.Now()

	accessToken, err = signToken(claims, now, accessTokenTTL, true)
	if err != nil {
		return "", "", err
	}

	// The refresh token omits permissions; they are re-derived from
	// the role at refresh time.
	refreshToken, err = signToken(claims, now, refreshTokenTTL, false)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func signToken(claims *models.UserClaims, now time.Time, ttl time.Duration, withPermissions bool) (string, error) {
	tokenClaims := models.UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatUint(uint64(claims.UserID), 10),
		},
		UserID:       claims.UserID,
		Email:        claims.Email,
		Role:         claims.Role,
		TokenVersion: claims.TokenVersion,
	}
	if withPermissions {
		tokenClaims.Permissions = claims.Permissions
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims).SignedString(jwtSecret())
}

// ParseToken parses and validates a token string, returning its claims.
func ParseToken(tokenStr string) (*jwt.Token, *models.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &models.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, nil, err
	}

	claims, ok := token.Claims.(*models.UserClaims)
	if !ok || !token.Valid {
		return nil, nil, errors.New("invalid token claims")
	}

	return token, claims, nil
}
