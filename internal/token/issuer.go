// Package token mints and validates the signed session credentials that
// represent an authenticated user.
package token

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

// signingKeySize is the HMAC-SHA256 key size in bytes.
const signingKeySize = 32

var (
	// ErrEmptySecret is returned by NewIssuer when the configured secret is empty.
	ErrEmptySecret = errors.New("signing secret must not be empty")
	// ErrInvalidCredential is returned by Validate for any malformed, tampered
	// or expired credential.
	ErrInvalidCredential = errors.New("invalid credential")
)

// Claims is the set of claims embedded in a session credential.
type Claims struct {
	UserID   int64  `json:"userId"`
	Provider string `json:"provider"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`

	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Issuer mints and validates signed session credentials.
//
// The signing key is derived once at construction and never changes for the
// lifetime of the process, so an Issuer is safe for concurrent use.
type Issuer struct {
	key    []byte
	expiry time.Duration
}

// NewIssuer derives the signing key from the given secret and returns an
// Issuer whose credentials live for the given expiry duration.
func NewIssuer(secret string, expiry time.Duration) (*Issuer, error) {
	key, err := deriveKey(secret)
	if err != nil {
		return nil, err
	}
	return &Issuer{key: key, expiry: expiry}, nil
}

// deriveKey turns an operator-supplied secret of unknown encoding and length
// into HMAC-SHA256 key material.
//
// The secret is first treated as standard base64; if that fails it is used as
// raw UTF-8 bytes. Either way, anything shorter than 32 bytes is extended to
// exactly 32 by repeating the source bytes cyclically. Longer inputs are kept
// as-is. The result is deterministic for any non-empty secret.
func deriveKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	raw, err := base64.StdEncoding.DecodeString(secret)
	if err != nil || len(raw) == 0 {
		raw = []byte(secret)
	}

	if len(raw) >= signingKeySize {
		return raw, nil
	}

	padded := make([]byte, signingKeySize)
	for i := range padded {
		padded[i] = raw[i%len(raw)]
	}
	return padded, nil
}

// Issue builds the claim set for the given user and returns the signed compact credential.
func (i *Issuer) Issue(userID int64, provider, email, nickname string) (string, error) {
	now := time.Now()

	tok, err := jwt.NewBuilder().
		Subject(strconv.FormatInt(userID, 10)).
		IssuedAt(now).
		Expiration(now.Add(i.expiry)).
		Claim("userId", userID).
		Claim("provider", provider).
		Claim("email", email).
		Claim("nickname", nickname).
		Build()
	if err != nil {
		return "", fmt.Errorf("error in jwt Build call: %w", err)
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256(), i.key))
	if err != nil {
		return "", fmt.Errorf("error in jwt.Sign call: %w", err)
	}

	return string(signed), nil
}

// Validate verifies the credential's signature and expiry and returns its claims.
func (i *Issuer) Validate(credential string) (Claims, error) {
	parsed, err := jwt.Parse([]byte(credential), jwt.WithKey(jwa.HS256(), i.key), jwt.WithValidate(true))
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %s", ErrInvalidCredential, err)
	}

	// The subject is the string form of the user id.
	sub, ok := parsed.Subject()
	if !ok {
		return Claims{}, fmt.Errorf("%w: sub claim is missing", ErrInvalidCredential)
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: sub claim is not an integer", ErrInvalidCredential)
	}

	claims := Claims{UserID: userID}
	if err := parsed.Get("provider", &claims.Provider); err != nil {
		return Claims{}, fmt.Errorf("%w: failed to decode provider claim", ErrInvalidCredential)
	}
	if err := parsed.Get("email", &claims.Email); err != nil {
		return Claims{}, fmt.Errorf("%w: failed to decode email claim", ErrInvalidCredential)
	}
	if err := parsed.Get("nickname", &claims.Nickname); err != nil {
		return Claims{}, fmt.Errorf("%w: failed to decode nickname claim", ErrInvalidCredential)
	}

	if iat, ok := parsed.IssuedAt(); ok {
		claims.IssuedAt = iat
	}
	if exp, ok := parsed.Expiration(); ok {
		claims.ExpiresAt = exp
	}

	return claims, nil
}
