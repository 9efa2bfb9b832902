package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Payphone-Digital/admin-panel/internal/model"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid      = errors.New("invalid token")
	ErrTokenClaimMissing = errors.New("token claim missing")
)

type JWTService struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewJWTService(secretKey string, ttl time.Duration) *JWTService {
	return &JWTService{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		now:       time.Now,
	}
}

// GenerateToken signs a session token for user carrying its current token version
func (s *JWTService) GenerateToken(user *model.User) (string, time.Time, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)

	claims := jwt.MapClaims{
		"user_id":       user.ID,
		"email":         user.Email,
		"name":          user.DisplayName(),
		"role":          user.Role,
		"token_version": user.TokenVersion,
		"exp":           expiresAt.Unix(),
		"iat":           issuedAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, time.Unix(expiresAt.Unix(), 0), nil
}

// ValidateToken checks signature and expiry and decodes the session claims.
// The token version still has to be compared against the store.
func (s *JWTService) ValidateToken(tokenString string) (*Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secretKey, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	session := &Session{}
	for key, dst := range map[string]*string{
		"user_id": &session.UserID,
		"email":   &session.Email,
		"role":    &session.Role,
	} {
		v, ok := claims[key].(string)
		if !ok || v == "" {
			return nil, fmt.Errorf("%w: %s", ErrTokenClaimMissing, key)
		}
		*dst = v
	}
	session.Name, _ = claims["name"].(string)

	version, ok := claims["token_version"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: token_version", ErrTokenClaimMissing)
	}
	session.TokenVersion = int(version)

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, fmt.Errorf("%w: exp", ErrTokenClaimMissing)
	}
	session.ExpiresAt = exp.Time

	return session, nil
}
