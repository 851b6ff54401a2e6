package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the decoded payload of a session token. The token is
// self-contained; possession of a valid, unexpired one is the only
// session proof the server recognizes.
type Claims struct {
	UserID   uuid.UUID
	Username string
	Role     string
	IssuedAt time.Time
	Expiry   time.Time
}

// Issuer signs and verifies session tokens. It is stateless.
type Issuer struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time // overridable in tests
}

func NewIssuer(secret string, expiry time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), expiry: expiry, now: time.Now}
}

// Issue produces a signed HS256 token expiring after the configured
// window.
func (i *Issuer) Issue(userID uuid.UUID, username, role string) (string, error) {
	now := i.now()
	claims := jwt.MapClaims{
		"userId":   userID.String(),
		"username": username,
		"role":     role,
		"iat":      now.Unix(),
		"exp":      now.Add(i.expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify parses and validates a token string. A token is valid strictly
// before its expiry. Any failure (bad signature, malformed, expired)
// collapses into ErrInvalidToken.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(i.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return FromMapClaims(mc)
}

// FromMapClaims converts raw JWT claims into typed Claims.
func FromMapClaims(mc jwt.MapClaims) (*Claims, error) {
	sub, _ := mc["userId"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalidToken
	}

	username, _ := mc["username"].(string)
	role, _ := mc["role"].(string)
	if username == "" || role == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
	}
	if iat, ok := mc["iat"].(float64); ok {
		claims.IssuedAt = time.Unix(int64(iat), 0)
	}
	if exp, ok := mc["exp"].(float64); ok {
		claims.Expiry = time.Unix(int64(exp), 0)
	}
	return claims, nil
}
