package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := New("secret", time.Hour)

	token, err := svc.GenerateToken("user-1", "artist")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "artist", claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestValidate_RejectsForeignSecretAndExpired(t *testing.T) {
	token, err := New("one", time.Hour).GenerateToken("user-1", "client")
	require.NoError(t, err)
	_, err = New("two", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := New("one", -time.Minute).GenerateToken("user-1", "client")
	require.NoError(t, err)
	_, err = New("one", time.Hour).ValidateToken(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiresAt(t *testing.T) {
	svc := New("secret", time.Hour)
	token, err := svc.GenerateToken("user-1", "client")
	require.NoError(t, err)

	exp, err := svc.ExpiresAt(token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	_, err = svc.ExpiresAt("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
