package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/domain"
)

// SessionService turns a Session into a signed bearer token and back.
type SessionService struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
	users     domain.UserRepository
}

func NewSessionService(secretKey string, issuer string, ttl time.Duration, users domain.UserRepository) *SessionService {
	return &SessionService{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		ttl:       ttl,
		users:     users,
	}
}

func (s *SessionService) Issue(session domain.Session) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  session.UserID,
		"role": session.Role,
		"exp":  now.Add(s.ttl).Unix(),
		"iat":  now.Unix(),
		"iss":  s.issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("session service: failed to sign token: %w", err)
	}

	return signed, nil
}

// Resolve validates the token and rebuilds the Session from the stored
// account, so a deleted user or a changed role takes effect immediately.
func (s *SessionService) Resolve(ctx context.Context, tokenString string) (domain.Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())

	if err != nil {
		return domain.Session{}, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return domain.Session{}, fmt.Errorf("invalid token claims")
	}

	userID, err := claims.GetSubject()
	if err != nil || userID == "" {
		return domain.Session{}, fmt.Errorf("invalid token subject")
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("user no longer exists or store error: %w", err)
	}

	return user.Session(), nil
}
