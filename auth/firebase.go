package auth

import (
	"context"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
)

// FirebaseClient is the part of *fbauth.Client the provider needs
type FirebaseClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
	SessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error)
	VerifySessionCookie(ctx context.Context, sessionCookie string) (*fbauth.Token, error)
}

// FirebaseProvider trades firebase ID tokens for firebase session cookies
type FirebaseProvider struct {
	client FirebaseClient
	ttl    time.Duration
}

func NewFirebaseProvider(client FirebaseClient, ttl time.Duration) *FirebaseProvider {
	return &FirebaseProvider{client: client, ttl: ttl}
}

// Exchange verifies idToken and mints a session cookie for its user
func (fp *FirebaseProvider) Exchange(ctx context.Context, idToken string) (session, uid string, expiresAt time.Time, err error) {
	token, err := fp.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", "", time.Time{}, errors.Wrap(ErrInvalidSession, err.Error())
	}
	session, err = fp.client.SessionCookie(ctx, idToken, fp.ttl)
	if err != nil {
		return "", "", time.Time{}, errors.Wrap(err, "creating session cookie")
	}
	return session, token.UID, time.Now().Add(fp.ttl), nil
}

func (fp *FirebaseProvider) Verify(ctx context.Context, session string) (string, error) {
	token, err := fp.client.VerifySessionCookie(ctx, session)
	if err != nil {
		return "", ErrInvalidSession
	}
	return token.UID, nil
}
