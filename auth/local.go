package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// LocalProvider signs sessions itself as HS256 JWTs
type LocalProvider struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewLocalProvider(secret string, ttl time.Duration) *LocalProvider {
	return &LocalProvider{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// NewUserId is the uid given to accounts created through signup
func (lp *LocalProvider) NewUserId() string {
	return uuid.NewString()
}

// Issue creates a session for uid and returns it with its expiry
func (lp *LocalProvider) Issue(uid string) (string, time.Time, error) {
	issuedAt := lp.now()
	expiresAt := issuedAt.Add(lp.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   uid,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	session, err := token.SignedString(lp.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return session, expiresAt, nil
}

func (lp *LocalProvider) Verify(ctx context.Context, session string) (string, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(session, &claims, func(token *jwt.Token) (interface{}, error) {
		return lp.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(lp.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidSession
	}
	return claims.Subject, nil
}
