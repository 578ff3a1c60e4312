package adapters

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memoryTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]bool
}

func newMemoryTokenRepository() *memoryTokenRepository {
	return &memoryTokenRepository{tokens: make(map[string]bool)}
}

func (r *memoryTokenRepository) SaveRefreshToken(_ context.Context, token string, _ uuid.UUID, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = true
	return nil
}

func (r *memoryTokenRepository) IsRefreshTokenValid(_ context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tokens[token], nil
}

func (r *memoryTokenRepository) InvalidateRefreshToken(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = false
	return nil
}

func TestTokenService_RoundTrip(t *testing.T) {
	repo := newMemoryTokenRepository()
	svc := NewTokenService("secret", time.Minute, time.Hour, repo)
	ctx := context.Background()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(ctx, userID, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := svc.ValidateAccessToken(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)

	claims, err = svc.ValidateRefreshToken(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)

	valid, err := svc.IsRefreshTokenValid(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.True(t, valid)

	require.NoError(t, svc.InvalidateRefreshToken(ctx, pair.RefreshToken))
	valid, err = svc.IsRefreshTokenValid(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestTokenService_RejectsWrongType(t *testing.T) {
	svc := NewTokenService("secret", time.Minute, time.Hour, newMemoryTokenRepository())
	ctx := context.Background()

	pair, err := svc.GenerateTokenPair(ctx, uuid.New(), "alice")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(ctx, pair.RefreshToken)
	assert.Error(t, err)

	_, err = svc.ValidateRefreshToken(ctx, pair.AccessToken)
	assert.Error(t, err)
}

func TestTokenService_RejectsForeignSecretAndExpiry(t *testing.T) {
	ctx := context.Background()
	other := NewTokenService("other", time.Minute, time.Hour, newMemoryTokenRepository())
	pair, err := other.GenerateTokenPair(ctx, uuid.New(), "alice")
	require.NoError(t, err)

	svc := NewTokenService("secret", time.Minute, time.Hour, newMemoryTokenRepository())
	_, err = svc.ValidateAccessToken(ctx, pair.AccessToken)
	assert.Error(t, err)

	expired := NewTokenService("secret", -time.Minute, time.Hour, newMemoryTokenRepository())
	pair, err = expired.GenerateTokenPair(ctx, uuid.New(), "alice")
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(ctx, pair.AccessToken)
	assert.Error(t, err)

	_, err = svc.ValidateAccessToken(ctx, "not-a-token")
	assert.Error(t, err)
}

func TestPasswordService(t *testing.T) {
	svc := NewPasswordServiceWithCost(bcrypt.MinCost)

	hash, err := svc.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.NoError(t, svc.VerifyPassword(hash, "correct horse"))
	assert.Error(t, svc.VerifyPassword(hash, "wrong horse"))

	assert.Error(t, svc.ValidatePasswordStrength("short"))
	assert.NoError(t, svc.ValidatePasswordStrength("longenough"))
}
