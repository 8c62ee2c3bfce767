package services

import (
	"regexp"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maeul-dev/maeul-backend/internal/config"
	"github.com/maeul-dev/maeul-backend/internal/models"
)

func TestPhoneConflictQueryIncludesDeletedAccounts(t *testing.T) {
	db := dryRunDB(t)

	var users []models.User
	stmt := phoneConflictQuery(db, "01012345678").Find(&users).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "phone")
	assert.Contains(t, stmt.Vars, "01012345678")
	// The unique index on users.phone spans soft-deleted rows; the
	// conflict check must see them too or re-registering a deleted
	// account's number falls through to a raw duplicate-key error.
	assert.NotContains(t, sql, "deleted_at")
}

func TestGenerateVerificationCodeFormat(t *testing.T) {
	sixDigits := regexp.MustCompile(`^\d{6}$`)

	for i := 0; i < 50; i++ {
		code, err := generateVerificationCode()
		require.NoError(t, err)
		assert.Regexp(t, sixDigits, code)
	}
}

func TestCodeExpired(t *testing.T) {
	now := time.Now()
	ttl := 30 * time.Minute

	assert.False(t, codeExpired(now.Add(-29*time.Minute), ttl, now))
	assert.True(t, codeExpired(now.Add(-30*time.Minute), ttl, now))
	assert.True(t, codeExpired(now.Add(-24*time.Hour), ttl, now))
}

func TestHashTokenDeterministic(t *testing.T) {
	a := hashToken("some-refresh-token")
	b := hashToken("some-refresh-token")
	c := hashToken("another-token")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64, "sha256 hex digest")
}

func TestAccessTokenRoundTrip(t *testing.T) {
	cfg := &config.Config{
		JWTSecret:       "test-secret",
		JWTAccessExpiry: 15 * time.Minute,
	}
	svc := &AuthService{cfg: cfg}

	user := &models.User{ID: uuid.New(), Role: "user"}
	signed, err := svc.generateAccessToken(user)
	require.NoError(t, err)

	parsed, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, user.ID.String(), claims["sub"])
	assert.Equal(t, "user", claims["role"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(cfg.JWTAccessExpiry), exp.Time, time.Minute)
}
