package auth

import (
	"testing"

	"github.com/ngandu/cimentmart/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthToken_RoundTrip(t *testing.T) {
	at := NewAuthToken([]byte("0123456789abcdef"))

	token, err := at.CreateToken(&models.User{
		ID:   "u1",
		Role: models.RoleAdmin,
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	payload, err := at.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", payload.UserID)
	assert.Equal(t, models.RoleAdmin, payload.Role)
}

func TestAuthToken_WrongKey(t *testing.T) {
	at := NewAuthToken([]byte("0123456789abcdef"))
	other := NewAuthToken([]byte("fedcba9876543210"))

	token, err := at.CreateToken(&models.User{ID: "u1", Role: models.RoleUser})
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.Error(t, err)
}

func TestAuthToken_Garbage(t *testing.T) {
	at := NewAuthToken([]byte("0123456789abcdef"))

	_, err := at.VerifyToken("not.a.token")
	assert.Error(t, err)
}
