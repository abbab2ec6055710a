package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const rolesClaim = "roles"

// tokenCodec issues and verifies HS256 access tokens. The key id is derived
// from the secret so rotated secrets are distinguishable in logs.
type tokenCodec struct {
	key      jwk.Key
	issuer   string
	audience string
	ttl      time.Duration
	skew     time.Duration
}

func newTokenCodec(secret []byte, issuer, audience string, ttl, skew time.Duration) (tokenCodec, error) {
	key, err := jwk.FromRaw(secret)
	if err != nil {
		return tokenCodec{}, fmt.Errorf("auth: signing key: %w", err)
	}
	sum := sha256.Sum256(secret)
	if err := key.Set(jwk.KeyIDKey, hex.EncodeToString(sum[:4])); err != nil {
		return tokenCodec{}, fmt.Errorf("auth: signing key id: %w", err)
	}
	return tokenCodec{key: key, issuer: issuer, audience: audience, ttl: ttl, skew: skew}, nil
}

func (c tokenCodec) issue(now time.Time, userID string, roles []string) (string, time.Time, error) {
	if roles == nil {
		roles = []string{}
	}
	exp := now.Add(c.ttl)
	tok, err := jwt.NewBuilder().
		Subject(userID).
		Issuer(c.issuer).
		Audience([]string{c.audience}).
		IssuedAt(now).
		NotBefore(now.Add(-c.skew)).
		Expiration(exp).
		Claim(rolesClaim, roles).
		Build()
	if err != nil {
		return "", time.Time{}, err
	}
	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, c.key))
	if err != nil {
		return "", time.Time{}, err
	}
	return string(signed), exp, nil
}

// verify checks the signature with HS256 only, so tokens signed with any
// other algorithm (including "none") fail, then validates the registered
// claims at now.
func (c tokenCodec) verify(raw string, now time.Time) (Claims, error) {
	tok, err := jwt.ParseString(raw,
		jwt.WithKey(jwa.HS256, c.key),
		jwt.WithTypedClaim(rolesClaim, []string{}),
		jwt.WithValidate(true),
		jwt.WithClock(jwt.ClockFunc(func() time.Time { return now })),
		jwt.WithAcceptableSkew(c.skew),
		jwt.WithIssuer(c.issuer),
		jwt.WithAudience(c.audience),
		jwt.WithRequiredClaim(jwt.SubjectKey),
		jwt.WithRequiredClaim(jwt.ExpirationKey),
	)
	if err != nil {
		return Claims{}, err
	}
	claims := Claims{UserID: tok.Subject()}
	if v, ok := tok.Get(rolesClaim); ok {
		claims.Roles, _ = v.([]string)
	}
	return claims, nil
}
