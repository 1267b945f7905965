package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"eshop_back_end/internal/models"
)

func TestGenerateAndParseJWT(t *testing.T) {
	user := models.User{
		ID:   primitive.NewObjectID(),
		Name: "Alice",
		Role: models.RoleManager,
	}

	token, err := GenerateJWT(user)
	require.NoError(t, err)

	claims, err := ParseJWT(token)
	require.NoError(t, err)

	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, "Alice", claims.Username)
	assert.Equal(t, models.RoleManager, claims.Role)
	assert.WithinDuration(t, time.Now(), claims.IssuedAt, 5*time.Second)
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	_, err := ParseJWT("pas.un.token")
	assert.Error(t, err)

	_, err = ParseJWT("")
	assert.Error(t, err)
}

func TestParseJWTRejectsTamperedToken(t *testing.T) {
	user := models.User{ID: primitive.NewObjectID(), Name: "Bob", Role: models.RoleUser}

	token, err := GenerateJWT(user)
	require.NoError(t, err)

	_, err = ParseJWT(token + "x")
	assert.Error(t, err)
}
