package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/voyatalk/voyatalk/internal/domain"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrNoToken      = errors.New("no token provided")
)

// Claims are the identity claims embedded in a session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// Verifier validates session tokens and extracts the caller identity.
// The signing secret is injected at construction; there is no package-level
// state.
type Verifier struct {
	secret     []byte
	tokenTTL   time.Duration
	cookieName string
}

// NewVerifier creates a Verifier with the given HS256 secret.
func NewVerifier(secret string, tokenTTL time.Duration, cookieName string) *Verifier {
	return &Verifier{
		secret:     []byte(secret),
		tokenTTL:   tokenTTL,
		cookieName: cookieName,
	}
}

// CookieName returns the name of the session cookie.
func (v *Verifier) CookieName() string {
	return v.cookieName
}

// Issue signs a session token for the given identity.
func (v *Verifier) Issue(id domain.Identity) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(v.tokenTTL)),
		},
		UserID:   id.UserID,
		Username: id.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

// Verify validates a token and returns the embedded identity. It is a pure
// function of the token and the configured secret.
func (v *Verifier) Verify(tokenString string) (*domain.Identity, error) {
	if tokenString == "" {
		return nil, ErrNoToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return &domain.Identity{UserID: claims.UserID, Username: claims.Username}, nil
}

// ExtractToken reads the session token from the request's cookie. This is
// the connection-establishment side-channel: the browser attaches the cookie
// to the websocket upgrade request.
func (v *Verifier) ExtractToken(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(v.cookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}
