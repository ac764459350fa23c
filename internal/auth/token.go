package auth

import (
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrNoIdentity   = errors.New("no authenticated identity in context")
)

// Identity is the authenticated caller extracted from an access token.
type Identity struct {
	UserID   uuid.UUID
	Username string
}

// TokenPair is the access/refresh pair returned by login.
type TokenPair struct {
	Access  string
	Refresh string
}

// Issuer mints and verifies HS256 tokens.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewIssuer(secret string) *Issuer {
	return &Issuer{
		secret:     []byte(secret),
		accessTTL:  time.Hour,
		refreshTTL: 7 * 24 * time.Hour,
	}
}

// Mint issues an access/refresh token pair for the given identity.
func (i *Issuer) Mint(identity Identity) (TokenPair, error) {
	access, err := i.sign(identity, "access", i.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := i.sign(identity, "refresh", i.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

func (i *Issuer) sign(identity Identity, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      identity.UserID.String(),
		"username": identity.Username,
		"typ":      tokenType,
		"iat":      jwt.NewNumericDate(now),
		"exp":      jwt.NewNumericDate(now.Add(ttl)),
	})
	return token.SignedString(i.secret)
}

// ParseAccess verifies an access token and returns the identity it carries.
// Refresh tokens are rejected here so they cannot be replayed as access tokens.
func (i *Issuer) ParseAccess(tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	if typ, _ := claims["typ"].(string); typ != "access" {
		return Identity{}, ErrInvalidToken
	}

	rawSub, _ := claims["sub"].(string)
	userID, err := uuid.FromString(rawSub)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	username, _ := claims["username"].(string)

	return Identity{UserID: userID, Username: username}, nil
}
