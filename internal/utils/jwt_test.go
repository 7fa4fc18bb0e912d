package utils

import (
	"testing"
	"time"

	"carpool/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTokenRoundTrip(t *testing.T) {
	userID := primitive.NewObjectID()

	token, err := GenerateToken(userID, models.RolePassenger, "secret", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.Equal(t, int64(3600), token.ExpiresIn)

	claims, err := ValidateToken(token.AccessToken, "secret")
	require.NoError(t, err)
	assert.Equal(t, userID.Hex(), claims.UserID)
	assert.Equal(t, string(models.RolePassenger), claims.Role)
	assert.Equal(t, AppName, claims.Issuer)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(primitive.NewObjectID(), models.RoleDriver, "secret", time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(token.AccessToken, "other-secret")
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	token, err := GenerateToken(primitive.NewObjectID(), models.RoleDriver, "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token.AccessToken, "secret")
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-token", "secret")
	assert.Error(t, err)
}
