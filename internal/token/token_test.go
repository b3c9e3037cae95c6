package token

import (
	"context"
	"testing"
	"time"

	"agrimarket/internal/errs"
	"agrimarket/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	m := NewManager([]byte("secret"), time.Hour)
	u := &model.User{ID: 7, Username: "t1", Role: model.RoleFarmer}

	signed, issued, err := m.Issue(u)
	require.NoError(t, err)
	require.NotEmpty(t, signed)
	assert.NotEmpty(t, issued.ID)

	claims, err := m.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "t1", claims.Subject)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, model.RoleFarmer, claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParse_Rejects(t *testing.T) {
	m := NewManager([]byte("secret"), time.Hour)
	u := &model.User{ID: 1, Username: "a", Role: model.RoleRetailer}

	other := NewManager([]byte("other"), time.Hour)
	forged, _, err := other.Issue(u)
	require.NoError(t, err)
	_, err = m.Parse(forged)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)

	expired := NewManager([]byte("secret"), time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.Issue(u)
	require.NoError(t, err)
	_, err = m.Parse(old)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
	assert.Contains(t, err.Error(), "expired")

	_, err = m.Parse("not-a-jwt")
	assert.ErrorIs(t, err, errs.ErrUnauthorized)

	bad := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: 1,
		Role:   "superuser",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "a",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	badSigned, err := bad.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = m.Parse(badSigned)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestRefreshToken(t *testing.T) {
	plain, hash, err := NewRefreshToken()
	require.NoError(t, err)
	assert.Len(t, plain, 64)
	assert.Len(t, hash, 64)
	assert.NotEqual(t, plain, hash)
	assert.Equal(t, hash, HashRefreshToken(plain))

	plain2, _, err := NewRefreshToken()
	require.NoError(t, err)
	assert.NotEqual(t, plain, plain2)
}

func TestNewDenylist_NilRedis(t *testing.T) {
	d := NewDenylist(nil)
	require.NoError(t, d.Revoke(context.Background(), "jti", time.Now().Add(time.Minute)))
	revoked, err := d.IsRevoked(context.Background(), "jti")
	require.NoError(t, err)
	assert.False(t, revoked)
}
