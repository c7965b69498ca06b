package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shoevote/api/internal/core/domain"
	"github.com/shoevote/api/internal/core/ports"
)

const sessionTTL = 12 * time.Hour

type sessionService struct {
	secret []byte
}

func NewSessionService(secret string) ports.SessionService {
	return &sessionService{
		secret: []byte(secret),
	}
}

// IssueToken signs a session token for a self-declared identity. The
// voter key is an opaque non-empty string; no credential is checked.
func (s *sessionService) IssueToken(_ context.Context, identity ports.Identity) (string, error) {
	voterKey := strings.TrimSpace(identity.VoterKey)
	if voterKey == "" {
		return "", domain.ErrEmptyVoterKey
	}

	claims := jwt.MapClaims{
		"sub":  voterKey,
		"name": identity.Name,
		"exp":  time.Now().Add(sessionTTL).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

func (s *sessionService) ParseToken(_ context.Context, tokenStr string) (*ports.Identity, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrInvalidSession
	}

	voterKey, _ := claims["sub"].(string)
	if voterKey == "" {
		return nil, domain.ErrInvalidSession
	}
	name, _ := claims["name"].(string)

	return &ports.Identity{VoterKey: voterKey, Name: name}, nil
}
