package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.NoError(t, CheckPassword(hash, "correct horse"))
	assert.ErrorIs(t, CheckPassword(hash, "wrong horse"), ErrInvalidCredentials)
	assert.ErrorIs(t, CheckPassword("", "correct horse"), ErrInvalidCredentials)
}

func TestLocalProvider(t *testing.T) {
	ctx := context.Background()
	provider := NewLocalProvider("0123456789abcdef", time.Hour)

	session, expiresAt, err := provider.Issue("uid-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	uid, err := provider.Verify(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", uid)

	_, err = NewLocalProvider("another-secret-value", time.Hour).Verify(ctx, session)
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = provider.Verify(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidSession)

	assert.NotEqual(t, provider.NewUserId(), provider.NewUserId())
}

func TestLocalProviderExpiry(t *testing.T) {
	ctx := context.Background()
	provider := NewLocalProvider("0123456789abcdef", time.Hour)
	issuedAt := time.Now()
	provider.now = func() time.Time { return issuedAt }

	session, _, err := provider.Issue("uid-1")
	require.NoError(t, err)

	provider.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	_, err = provider.Verify(ctx, session)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

type fakeFirebase struct {
	idTokens map[string]string
	sessions map[string]string
}

func (ff *fakeFirebase) VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error) {
	uid, ok := ff.idTokens[idToken]
	if !ok {
		return nil, errors.New("bad id token")
	}
	return &fbauth.Token{UID: uid}, nil
}

func (ff *fakeFirebase) SessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error) {
	session := "session-" + idToken
	ff.sessions[session] = ff.idTokens[idToken]
	return session, nil
}

func (ff *fakeFirebase) VerifySessionCookie(ctx context.Context, sessionCookie string) (*fbauth.Token, error) {
	uid, ok := ff.sessions[sessionCookie]
	if !ok {
		return nil, errors.New("bad session")
	}
	return &fbauth.Token{UID: uid}, nil
}

func TestFirebaseProvider(t *testing.T) {
	ctx := context.Background()
	provider := NewFirebaseProvider(&fakeFirebase{
		idTokens: map[string]string{"id-token": "fb-uid"},
		sessions: map[string]string{},
	}, time.Hour)

	session, uid, _, err := provider.Exchange(ctx, "id-token")
	require.NoError(t, err)
	assert.Equal(t, "fb-uid", uid)

	verified, err := provider.Verify(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, "fb-uid", verified)

	_, _, _, err = provider.Exchange(ctx, "forged")
	assert.ErrorIs(t, err, ErrInvalidSession)
	_, err = provider.Verify(ctx, "forged")
	assert.ErrorIs(t, err, ErrInvalidSession)
}
