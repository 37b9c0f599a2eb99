package security

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

const tokenIssuer = "toolshare"

// SessionClaims is what the session cookie carries. The server-side session
// table stays authoritative; the claims only let a tampered cookie be
// rejected without a lookup.
type SessionClaims struct {
	UserID int32 `json:"user_id"`
	jwt.RegisteredClaims
}

// SessionID returns the server-side session key (the jti claim).
func (c *SessionClaims) SessionID() string {
	return c.ID
}

type TokenManager interface {
	// GenerateSessionToken signs a token for a freshly started session and
	// returns it together with the new session id.
	GenerateSessionToken(userID int32, ttl time.Duration) (token string, sessionID string, err error)
	ValidateToken(tokenString string) (*SessionClaims, error)
}

type tokenManager struct {
	secret []byte
	now    func() time.Time
}

func NewTokenManager(secret string) TokenManager {
	return &tokenManager{
		secret: []byte(secret),
		now:    time.Now,
	}
}

func (m *tokenManager) GenerateSessionToken(userID int32, ttl time.Duration) (string, string, error) {
	sessionID := uuid.NewString()
	now := m.now()

	claims := SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  strconv.Itoa(int(userID)),
			IssuedAt: jwt.NewNumericDate(now),
			Issuer:   tokenIssuer,
			ID:       sessionID,
		},
	}
	// ttl 0 means the session lives until logout
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", "", err
	}
	return signed, sessionID, nil
}

func (m *tokenManager) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithIssuer(tokenIssuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	if claims.UserID == 0 && claims.Subject != "" {
		uid, _ := strconv.Atoi(claims.Subject)
		claims.UserID = int32(uid)
	}
	return claims, nil
}
