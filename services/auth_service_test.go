package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/anjiri1684/alx_travel/apperrors"
	"github.com/anjiri1684/alx_travel/models"
	"github.com/anjiri1684/alx_travel/services"
	"github.com/anjiri1684/alx_travel/testutil"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuth(t *testing.T) (*services.AuthService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	cfg := services.AuthConfig{Secret: "test-secret", AccessTTL: 5 * time.Minute, RefreshTTL: 24 * time.Hour}
	return services.NewAuthService(db, cfg, services.NewGormBlacklist(db)), db
}

func TestRegister(t *testing.T) {
	auth, _ := newAuth(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, services.RegisterInput{
		Username: "abebe", Email: "abebe@example.com", Password: "s3cret-pass", Role: "host",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleHost, user.Role.Name)
	assert.NotEqual(t, "s3cret-pass", user.Password)

	guest, err := auth.Register(ctx, services.RegisterInput{
		Username: "kebede", Email: "kebede@example.com", Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleGuest, guest.Role.Name)

	_, err = auth.Register(ctx, services.RegisterInput{
		Username: "abebe", Email: "other@example.com", Password: "s3cret-pass",
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeConflict))

	_, err = auth.Register(ctx, services.RegisterInput{
		Username: "almaz", Email: "almaz@example.com", Password: "s3cret-pass", Role: "ADMIN",
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))
}

func TestLoginAndClaims(t *testing.T) {
	auth, db := newAuth(t)
	user := testutil.CreateUser(t, db, models.RoleHost)
	ctx := context.Background()

	for _, login := range []string{user.Username, user.Email} {
		pair, err := auth.Login(ctx, login, testutil.Password)
		require.NoError(t, err, login)

		claims, err := auth.Parse(pair.Access)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims["user_id"])
		assert.Equal(t, models.RoleHost, claims["role"])
		assert.Equal(t, services.TokenTypeAccess, claims["token_type"])
		assert.NotEmpty(t, claims["jti"])

		refresh, err := auth.Parse(pair.Refresh)
		require.NoError(t, err)
		assert.Equal(t, services.TokenTypeRefresh, refresh["token_type"])
	}

	_, err := auth.Login(ctx, user.Username, "wrong")
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeUnauthorized))

	_, err = auth.Login(ctx, "nobody", testutil.Password)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeUnauthorized))
}

func TestParse_RejectsForeignTokens(t *testing.T) {
	auth, _ := newAuth(t)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "x", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = auth.Parse(forged)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeUnauthorized))

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "x", "exp": time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = auth.Parse(expired)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeUnauthorized))

	_, err = auth.Parse("not-a-token")
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeUnauthorized))
}

func TestRefreshAndLogout(t *testing.T) {
	auth, db := newAuth(t)
	user := testutil.CreateUser(t, db, models.RoleGuest)
	ctx := context.Background()

	pair, err := auth.Login(ctx, user.Username, testutil.Password)
	require.NoError(t, err)

	access, err := auth.Refresh(ctx, pair.Refresh)
	require.NoError(t, err)
	require.NoError(t, auth.Verify(ctx, access))

	_, err = auth.Refresh(ctx, pair.Access)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeUnauthorized), "access token must not refresh")

	other := testutil.CreateUser(t, db, models.RoleGuest)
	err = auth.Logout(ctx, other.ID, pair.Refresh)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeUnauthorized))

	require.NoError(t, auth.Logout(ctx, user.ID, pair.Refresh))

	_, err = auth.Refresh(ctx, pair.Refresh)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeUnauthorized))
	assert.True(t, apperrors.Is(auth.Verify(ctx, pair.Refresh), apperrors.ErrorTypeUnauthorized))

	err = auth.Logout(ctx, user.ID, pair.Refresh)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeUnauthorized))
}

func TestGormBlacklist(t *testing.T) {
	db := testutil.NewDB(t)
	bl := services.NewGormBlacklist(db)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, bl.Add(ctx, "old", now.Add(-time.Minute)))
	require.NoError(t, bl.Add(ctx, "live", now.Add(time.Hour)))
	require.NoError(t, bl.Add(ctx, "live", now.Add(time.Hour)))

	found, err := bl.Contains(ctx, "live")
	require.NoError(t, err)
	assert.True(t, found)

	purged, err := bl.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)

	found, err = bl.Contains(ctx, "old")
	require.NoError(t, err)
	assert.False(t, found)
}
