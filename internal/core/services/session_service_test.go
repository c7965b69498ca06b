package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoevote/api/internal/core/domain"
	"github.com/shoevote/api/internal/core/ports"
)

func TestSessionTokenRoundtrip(t *testing.T) {
	svc := NewSessionService("test-secret")
	ctx := context.Background()

	token, err := svc.IssueToken(ctx, ports.Identity{VoterKey: "a@x.com", Name: "Ana"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := svc.ParseToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", identity.VoterKey)
	assert.Equal(t, "Ana", identity.Name)
}

func TestSessionRejectsEmptyVoterKey(t *testing.T) {
	svc := NewSessionService("test-secret")

	_, err := svc.IssueToken(context.Background(), ports.Identity{VoterKey: "   ", Name: "Ana"})
	assert.ErrorIs(t, err, domain.ErrEmptyVoterKey)
}

func TestSessionRejectsForgedToken(t *testing.T) {
	svc := NewSessionService("test-secret")
	other := NewSessionService("other-secret")
	ctx := context.Background()

	token, err := other.IssueToken(ctx, ports.Identity{VoterKey: "a@x.com"})
	require.NoError(t, err)

	_, err = svc.ParseToken(ctx, token)
	assert.ErrorIs(t, err, domain.ErrInvalidSession)

	_, err = svc.ParseToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, domain.ErrInvalidSession)
}
