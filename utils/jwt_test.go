package utils

import (
	"fmt"
	"testing"
	"time"

	"learnsphere/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "jwt-test-secret"

func TestCreateAndValidateToken(t *testing.T) {
	token, err := CreateToken(testSecret, 42, "user")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "user", claims.Role)
}

func TestValidateJWT_Rejections(t *testing.T) {
	token, err := CreateToken(testSecret, 42, "user")
	require.NoError(t, err)

	_, err = ValidateJWT("other-secret", token)
	assert.Error(t, err)

	_, err = ValidateJWT(testSecret, "")
	assert.Error(t, err)

	_, err = ValidateJWT(testSecret, "not.a.token")
	assert.Error(t, err)
}

func newTokenTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.RefreshToken{}))
	return db
}

func TestRefreshTokenLifecycle(t *testing.T) {
	db := newTokenTestDB(t)

	raw, hashed, err := GenerateRefreshToken()
	require.NoError(t, err)
	require.NotEqual(t, raw, hashed)

	require.NoError(t, SaveRefreshToken(db, 1, hashed, time.Now().Add(time.Hour)))

	rt, err := ValidateRefreshToken(db, raw)
	require.NoError(t, err)
	assert.Equal(t, uint(1), rt.UserID)

	// A second save for the same user replaces the row instead of stacking.
	raw2, hashed2, err := GenerateRefreshToken()
	require.NoError(t, err)
	require.NoError(t, SaveRefreshToken(db, 1, hashed2, time.Now().Add(time.Hour)))

	var count int64
	db.Model(&models.RefreshToken{}).Count(&count)
	assert.Equal(t, int64(1), count)

	_, err = ValidateRefreshToken(db, raw)
	assert.Error(t, err, "old token no longer valid")

	_, err = ValidateRefreshToken(db, raw2)
	assert.NoError(t, err)

	require.NoError(t, DeleteRefreshToken(db, raw2))
	_, err = ValidateRefreshToken(db, raw2)
	assert.Error(t, err)
}

func TestValidateRefreshToken_Expired(t *testing.T) {
	db := newTokenTestDB(t)

	raw, hashed, err := GenerateRefreshToken()
	require.NoError(t, err)
	require.NoError(t, SaveRefreshToken(db, 1, hashed, time.Now().Add(-time.Minute)))

	_, err = ValidateRefreshToken(db, raw)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	require.NotEqual(t, "secret123", hash)

	assert.True(t, CheckPasswordHash("secret123", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
