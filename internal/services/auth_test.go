package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/yungbote/kazlearn-backend/internal/domain"
	"github.com/yungbote/kazlearn-backend/internal/platform/apierr"
	"github.com/yungbote/kazlearn-backend/internal/platform/ctxutil"
)

func TestRegisterLoginLogout(t *testing.T) {
	h := newHarness(t)

	u, err := h.auth.Register(h.ctx, RegisterInput{Username: "Student123", Email: " Student@Kazakh.Learn ", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "student@kazakh.learn", u.Email)
	assert.NotEqual(t, "password123", u.PasswordHash)
	assert.Equal(t, types.DefaultTheme, u.CurrentTheme)

	_, err = h.auth.Register(h.ctx, RegisterInput{Username: "Student123", Email: "other@kazakh.learn", Password: "x"})
	assert.True(t, errors.Is(err, apierr.ErrConflict))

	_, err = h.auth.Login(h.ctx, "Student123", "wrong")
	assert.True(t, errors.Is(err, apierr.ErrUnauthenticated))
	_, err = h.auth.Login(h.ctx, "nobody", "password123")
	assert.True(t, errors.Is(err, apierr.ErrUnauthenticated))

	sess, err := h.auth.Login(h.ctx, "Student123", "password123")
	require.NoError(t, err)
	require.NotNil(t, sess.User.LastLogin)
	assert.Equal(t, int((15 * time.Minute).Seconds()), sess.ExpiresIn)

	ctx, err := h.auth.SetContextFromToken(context.Background(), sess.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, ctxutil.UserID(ctx))
	assert.Equal(t, "Student123", ctxutil.GetRequestData(ctx).Username)

	require.NoError(t, h.auth.Logout(h.ctx, sess.AccessToken))
	_, err = h.auth.SetContextFromToken(context.Background(), sess.AccessToken)
	assert.True(t, errors.Is(err, apierr.ErrUnauthenticated), "revoked token")
}

func TestRegisterValidation(t *testing.T) {
	h := newHarness(t)
	for _, in := range []RegisterInput{
		{Email: "a@b.kz", Password: "x"},
		{Username: "a", Password: "x"},
		{Username: "a", Email: "a@b.kz"},
		{Username: "a", Email: "not-an-email", Password: "x"},
	} {
		_, err := h.auth.Register(h.ctx, in)
		assert.True(t, errors.Is(err, apierr.ErrValidation), "%+v", in)
	}
}

func TestRefreshRotatesTokens(t *testing.T) {
	h := newHarness(t)
	_, err := h.auth.Register(h.ctx, RegisterInput{Username: "ainur", Email: "ainur@kz.kz", Password: "pw"})
	require.NoError(t, err)
	sess, err := h.auth.Login(h.ctx, "ainur", "pw")
	require.NoError(t, err)

	next, err := h.auth.Refresh(h.ctx, sess.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, sess.RefreshToken, next.RefreshToken)
	assert.NotEqual(t, sess.AccessToken, next.AccessToken)

	_, err = h.auth.Refresh(h.ctx, sess.RefreshToken)
	assert.True(t, errors.Is(err, apierr.ErrUnauthenticated), "old refresh token is single use")

	_, err = h.auth.SetContextFromToken(context.Background(), sess.AccessToken)
	assert.True(t, errors.Is(err, apierr.ErrUnauthenticated), "old access token revoked")

	_, err = h.auth.SetContextFromToken(context.Background(), next.AccessToken)
	assert.NoError(t, err)
}

func TestSetContextFromTokenRejectsForgery(t *testing.T) {
	h := newHarness(t)
	_, err := h.auth.SetContextFromToken(context.Background(), "")
	assert.True(t, errors.Is(err, apierr.ErrUnauthenticated))

	other := NewAuthService(h.db, h.log, h.userRepo, h.userTokenRepo, "other-secret", time.Minute, time.Hour)
	_, err = other.Register(h.ctx, RegisterInput{Username: "mallory", Email: "m@kz.kz", Password: "pw"})
	require.NoError(t, err)
	sess, err := other.Login(h.ctx, "mallory", "pw")
	require.NoError(t, err)

	_, err = h.auth.SetContextFromToken(context.Background(), sess.AccessToken)
	assert.True(t, errors.Is(err, apierr.ErrUnauthenticated))
}

func TestPurgeExpiredTokens(t *testing.T) {
	h := newHarness(t)
	short := NewAuthService(h.db, h.log, h.userRepo, h.userTokenRepo, "test-secret", time.Minute, -time.Minute)
	_, err := short.Register(h.ctx, RegisterInput{Username: "yerzhan", Email: "y@kz.kz", Password: "pw"})
	require.NoError(t, err)
	sess, err := short.Login(h.ctx, "yerzhan", "pw")
	require.NoError(t, err)

	n, err := h.auth.PurgeExpiredTokens(h.ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = h.auth.Refresh(h.ctx, sess.RefreshToken)
	assert.True(t, errors.Is(err, apierr.ErrUnauthenticated))
}
