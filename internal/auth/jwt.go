package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/axo-networks/marketplace-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

const tokenIssuer = "marketplace-api"

// Claims is the payload of an access token
type Claims struct {
	UserID             uuid.UUID       `json:"userId"`
	Email              string          `json:"email"`
	UserType           domain.UserType `json:"userType"`
	Company            string          `json:"company"`
	Name               string          `json:"name"`
	ForcePasswordReset bool            `json:"forcePasswordReset"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 access tokens
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates a token issuer with the shared secret and token lifetime
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for the user
func (i *TokenIssuer) Issue(user *domain.User) (string, error) {
	now := i.now()
	claims := Claims{
		UserID:             user.ID,
		Email:              user.Email,
		UserType:           user.UserType,
		Company:            user.Company,
		Name:               user.Name,
		ForcePasswordReset: user.ForcePasswordReset,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature and expiry and returns the identity
func (i *TokenIssuer) Parse(tokenString string) (*UserContext, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == uuid.Nil {
		return nil, ErrInvalidToken
	}

	return &UserContext{
		UserID:             claims.UserID,
		Email:              claims.Email,
		Name:               claims.Name,
		Company:            claims.Company,
		UserType:           claims.UserType,
		ForcePasswordReset: claims.ForcePasswordReset,
	}, nil
}
